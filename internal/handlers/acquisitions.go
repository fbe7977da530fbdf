package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mufattish/backend/internal/acquisitions"
	"github.com/mufattish/backend/internal/logger"
	"github.com/mufattish/backend/internal/services"
)

// maxUploadBytes caps one spreadsheet file; grade grids are tiny, anything
// bigger is not one.
const maxUploadBytes = 10 << 20

type AcquisitionsHandler struct {
	log *logger.Logger
	svc services.AcquisitionsService
}

func NewAcquisitionsHandler(log *logger.Logger, svc services.AcquisitionsService) *AcquisitionsHandler {
	return &AcquisitionsHandler{
		log: log.With("handler", "AcquisitionsHandler"),
		svc: svc,
	}
}

// GET /api/acquisitions/selectors
// The (level, subject) pairs the detailed parser supports, for upload forms.
func (h *AcquisitionsHandler) ListSelectors(c *gin.Context) {
	RespondOK(c, acquisitions.SupportedSelectors())
}

// POST /api/acquisitions/classes
// Multipart upload: one or more spreadsheet files under "files", plus
// school/class_name/level/subject fields.
func (h *AcquisitionsHandler) UploadClassRecord(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_multipart", err)
		return
	}
	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		RespondError(c, http.StatusBadRequest, "missing_files", fmt.Errorf("no files uploaded"))
		return
	}
	files, err := readUploads(fileHeaders)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}

	meta := services.ClassUploadMeta{
		School:    c.PostForm("school"),
		ClassName: c.PostForm("class_name"),
		Level:     c.PostForm("level"),
		Subject:   c.PostForm("subject"),
	}
	record, count, err := h.svc.ImportClassRecord(c.Request.Context(), meta, files)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedSchema) {
			RespondError(c, http.StatusBadRequest, "unsupported_schema", err)
			return
		}
		RespondError(c, http.StatusUnprocessableEntity, "parse_failed", err)
		return
	}
	RespondCreated(c, gin.H{"record": record, "student_count": count})
}

// GET /api/acquisitions/classes
func (h *AcquisitionsHandler) ListClassRecords(c *gin.Context) {
	records, err := h.svc.ListClassRecords(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, records)
}

// GET /api/acquisitions/classes/:id
func (h *AcquisitionsHandler) GetClassRecord(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	record, err := h.svc.GetClassRecord(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	RespondOK(c, record)
}

// GET /api/acquisitions/classes/:id/indicators
func (h *AcquisitionsHandler) ClassIndicators(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	dashboard, err := h.svc.ClassIndicators(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	RespondOK(c, dashboard)
}

// DELETE /api/acquisitions/classes/:id
func (h *AcquisitionsHandler) DeleteClassRecord(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteClassRecord(c.Request.Context(), id); err != nil {
		RespondError(c, http.StatusInternalServerError, "delete_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/acquisitions/global
// Multipart upload: one omnibus spreadsheet under "file".
func (h *AcquisitionsHandler) UploadGlobalRecord(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	files, err := readUploads([]*multipart.FileHeader{fileHeader})
	if err != nil {
		RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}

	meta := services.GlobalUploadMeta{
		School:    c.PostForm("school"),
		ClassName: c.PostForm("class_name"),
	}
	record, result, err := h.svc.ImportGlobalRecord(c.Request.Context(), meta, files[0])
	if err != nil {
		if errors.Is(err, acquisitions.ErrNoHeaderRow) {
			RespondError(c, http.StatusUnprocessableEntity, "no_header_row", err)
			return
		}
		RespondError(c, http.StatusUnprocessableEntity, "parse_failed", err)
		return
	}
	RespondCreated(c, gin.H{
		"record":            record,
		"student_count":     len(result.Students),
		"detected_subjects": result.Subjects,
	})
}

// GET /api/acquisitions/global
func (h *AcquisitionsHandler) ListGlobalRecords(c *gin.Context) {
	records, err := h.svc.ListGlobalRecords(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, records)
}

// GET /api/acquisitions/global/:id
func (h *AcquisitionsHandler) GetGlobalRecord(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	record, err := h.svc.GetGlobalRecord(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	RespondOK(c, record)
}

// GET /api/acquisitions/global/:id/indicators
func (h *AcquisitionsHandler) GlobalIndicators(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	dashboard, err := h.svc.GlobalIndicators(c.Request.Context(), id)
	if err != nil {
		respondLookupError(c, err)
		return
	}
	RespondOK(c, dashboard)
}

// DELETE /api/acquisitions/global/:id
func (h *AcquisitionsHandler) DeleteGlobalRecord(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteGlobalRecord(c.Request.Context(), id); err != nil {
		RespondError(c, http.StatusInternalServerError, "delete_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return uuid.Nil, false
	}
	return id, true
}

func respondLookupError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	RespondError(c, http.StatusInternalServerError, "lookup_failed", err)
}

func readUploads(headers []*multipart.FileHeader) ([][]byte, error) {
	files := make([][]byte, 0, len(headers))
	for _, header := range headers {
		if header.Size > maxUploadBytes {
			return nil, fmt.Errorf("file %q exceeds the %d byte limit", header.Filename, maxUploadBytes)
		}
		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload %q: %w", header.Filename, err)
		}
		data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("read upload %q: %w", header.Filename, err)
		}
		files = append(files, data)
	}
	return files, nil
}
