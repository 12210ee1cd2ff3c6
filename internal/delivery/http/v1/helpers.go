package v1

import (
	"io"
	"strconv"
	"sync"

	"alumni-network-backend/pkg/apperror"
	"alumni-network-backend/pkg/security"
	"alumni-network-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var bindingOnce sync.Once

// configureBinding registers the custom tags on gin's validator engine.
func configureBinding() {
	bindingOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			validation.Configure(v)
		}
	})
}

func bindError(err error) *apperror.AppError {
	return apperror.Validation(validation.FormatValidationErrors(err))
}

// bindJSON binds the body into dst and records a 400 on failure.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.Error(bindError(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		c.Error(bindError(err))
		return false
	}
	return true
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.Error(apperror.BadRequest("Invalid " + name))
		return 0, false
	}
	return id, true
}

// readImage reads the multipart "file" field, capped one byte past the image
// limit so oversize uploads are still detected.
func readImage(c *gin.Context) (string, []byte, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("Missing file"))
		return "", nil, false
	}
	if header.Size > security.MaxImageSize {
		c.Error(apperror.BadRequest(security.ErrImageTooLarge.Error()))
		return "", nil, false
	}

	f, err := header.Open()
	if err != nil {
		c.Error(apperror.BadRequest("Could not read file"))
		return "", nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, security.MaxImageSize+1))
	if err != nil {
		c.Error(apperror.BadRequest("Could not read file"))
		return "", nil, false
	}
	return header.Filename, data, true
}
