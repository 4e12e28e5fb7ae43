package v1

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
)

// maxImageUploadSize caps image uploads at 5 MB
const maxImageUploadSize = 5 << 20

// readImageUpload extracts the uploaded image bytes from the "image" form field
func readImageUpload(c *gin.Context) ([]byte, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, fmt.Errorf("image file is required: %w", err)
	}
	if fileHeader.Size > maxImageUploadSize {
		return nil, fmt.Errorf("image exceeds the %d MB upload limit", maxImageUploadSize>>20)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if len(data) > maxImageUploadSize {
		return nil, fmt.Errorf("image exceeds the %d MB upload limit", maxImageUploadSize>>20)
	}
	return data, nil
}
