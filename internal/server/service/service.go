package service

// M is an arbitrary map serializable in JSON by the API.
type M map[string]any
