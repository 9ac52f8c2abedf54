package server

import (
	"path"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/astucampus/lostandfound/internal/imaging"
	"github.com/astucampus/lostandfound/internal/lferror"
)

// storeImage processes the uploaded file of the given multipart field and
// saves it. It returns the public path of the stored image and whether a file
// was provided at all.
func storeImage(c echo.Context, uploads *imaging.Store, field string) (string, bool, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return "", false, nil
	}

	f, err := header.Open()
	if err != nil {
		return "", true, errors.Wrap(err, "could not open uploaded file")
	}
	defer f.Close()

	data, err := imaging.Process(f)
	if err != nil {
		if errors.Cause(err) == imaging.ErrUnsupportedFormat {
			return "", true, lferror.BadRequest(err.Error())
		}
		return "", true, err
	}

	name, err := uploads.Save(data)
	if err != nil {
		return "", true, err
	}

	return path.Join("/uploads", name), true, nil
}
