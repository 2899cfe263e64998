package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"marketing-template/storage"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

var uploadFields = map[storage.Slot]string{
	storage.Primary:   "primary_template",
	storage.Secondary: "secondary_template",
}

type UploadHandler struct {
	Storage storage.TemplateStore
	Policy  *bluemonday.Policy
}

// NewTemplatePolicy returns the sanitiser applied when stored templates are
// shown on the page. Files on disk keep the uploaded bytes unchanged.
func NewTemplatePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class", "style").Globally()
	return p
}

type stackedTemplate struct {
	Filename string
	Content  template.HTML
}

func (h *UploadHandler) UploadForm(c *gin.Context) {
	c.HTML(http.StatusOK, "upload_primary_secondary.html", nil)
}

// Upload writes each attached template over its fixed file. Missing
// attachments are skipped, so a single upload leaves the other file as it was.
func (h *UploadHandler) Upload(c *gin.Context) {
	filenames := []string{}

	for _, slot := range storage.Slots {
		fh, err := c.FormFile(uploadFields[slot])
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			// Absent field, empty file input or a non-multipart body.
			continue
		}
		if err != nil {
			fail(c, fmt.Errorf("read %s upload: %w", slot, err))
			return
		}

		src, err := fh.Open()
		if err != nil {
			fail(c, fmt.Errorf("open %s upload: %w", slot, err))
			return
		}
		name, err := h.Storage.Save(slot, src)
		src.Close()
		if err != nil {
			fail(c, err)
			return
		}
		filenames = append(filenames, name)
	}

	stacked, err := h.stacked()
	if err != nil {
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "show_primary_secondary.html", gin.H{
		"Filenames": filenames,
		"Uploaded":  true,
		"Stacked":   stacked,
	})
}

// Show renders whatever templates are currently stored, primary first.
func (h *UploadHandler) Show(c *gin.Context) {
	stacked, err := h.stacked()
	if err != nil {
		fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "show_primary_secondary.html", gin.H{
		"Stacked": stacked,
	})
}

func (h *UploadHandler) stacked() ([]stackedTemplate, error) {
	var out []stackedTemplate
	for _, slot := range storage.Slots {
		content, ok, err := h.Storage.Read(slot)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		name, err := slot.Filename()
		if err != nil {
			return nil, err
		}
		out = append(out, stackedTemplate{
			Filename: name,
			Content:  template.HTML(h.Policy.SanitizeBytes(content)),
		})
	}
	return out, nil
}
