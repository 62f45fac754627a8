package client

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"productconsole/models"
)

// UploadProductFile streams content as the multipart field "file" for the given slot.
func (c *Client) UploadProductFile(ctx context.Context, productID string, fileType models.FileType, fileName string, content io.Reader) (models.ProductFileResponse, error) {
	path := fmt.Sprintf("/products/%s/files/%s", url.PathEscape(productID), url.PathEscape(string(fileType)))

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)
	go func() {
		part, err := form.CreateFormFile("file", fileName)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, content); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(form.Close())
	}()

	var file models.ProductFileResponse
	req, err := c.newRequest(ctx, http.MethodPost, path, pr, form.FormDataContentType())
	if err != nil {
		pr.CloseWithError(err)
		return file, err
	}
	err = c.do(req, path, &file)
	pr.CloseWithError(io.ErrClosedPipe)
	return file, err
}

// ListProductFiles lists the files of one slot of a product.
func (c *Client) ListProductFiles(ctx context.Context, productID string, fileType models.FileType) ([]models.ProductFileResponse, error) {
	path := fmt.Sprintf("/products/%s/files/%s", url.PathEscape(productID), url.PathEscape(string(fileType)))

	var files []models.ProductFileResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &files); err != nil {
		return nil, err
	}
	if files == nil {
		files = []models.ProductFileResponse{}
	}
	return files, nil
}

// DeleteProductFile deletes an attachment. Failures with a masked status are reported as success.
func (c *Client) DeleteProductFile(ctx context.Context, fileID string) error {
	err := c.doJSON(ctx, http.MethodDelete, "/products/files/"+url.PathEscape(fileID), nil, nil)
	return c.maskDelete("file", fileID, err)
}
