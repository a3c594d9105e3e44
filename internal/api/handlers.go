package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/briefpress/internal/pipeline"
	"github.com/dgallion1/briefpress/internal/source"
)

type formatRequest struct {
	SourceID    string `json:"source_id"`
	CompanyName string `json:"company_name"`
	Title       string `json:"title"`
	ParentID    string `json:"parent_id"`
}

type formatResponse struct {
	OK           bool   `json:"ok"`
	PageID       string `json:"page_id"`
	SectionCount int    `json:"section_count"`
	BlockCount   int    `json:"block_count"`
	BytesWritten int    `json:"bytes_written"`
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.SourceID == "" {
		jsonError(w, "source_id is required", http.StatusBadRequest)
		return
	}
	if req.ParentID == "" {
		req.ParentID = s.cfg.NotionParentID
	}

	res, err := s.runner.Run(r.Context(), pipeline.Request{
		SourceID:    req.SourceID,
		CompanyName: req.CompanyName,
		Title:       req.Title,
		ParentID:    req.ParentID,
	})
	if err != nil {
		s.writeRunError(w, err)
		return
	}
	writeResult(w, res)
}

func (s *Server) handleFormatUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !source.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	parser, err := source.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	tree, err := parser.Parse(io.LimitReader(file, s.cfg.MaxUploadBytes+1), filename)
	if err != nil {
		jsonError(w, "parse failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	parentID := r.FormValue("parent_id")
	if parentID == "" {
		parentID = s.cfg.NotionParentID
	}

	res, err := s.runner.RunTree(r.Context(), tree, pipeline.Request{
		SourceID:    filename,
		CompanyName: r.FormValue("company_name"),
		Title:       r.FormValue("title"),
		ParentID:    parentID,
	})
	if err != nil {
		s.writeRunError(w, err)
		return
	}
	writeResult(w, res)
}

// writeRunError maps pipeline failures to distinguishing statuses: bad input
// is the client's problem, collaborator failures are upstream, deadlines are
// timeouts, everything else is ours.
func (s *Server) writeRunError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pipeline.ErrEmptySource):
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, context.DeadlineExceeded):
		jsonError(w, "run deadline exceeded", http.StatusGatewayTimeout)
	default:
		var readErr *pipeline.ReadError
		var writeErr *pipeline.WriteError
		if errors.As(err, &readErr) || errors.As(err, &writeErr) {
			jsonError(w, err.Error(), http.StatusBadGateway)
			return
		}
		s.log.Error("run failed", "error", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

func writeResult(w http.ResponseWriter, res *pipeline.Result) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(formatResponse{
		OK:           true,
		PageID:       res.PageID,
		SectionCount: res.SectionCount,
		BlockCount:   res.BlockCount,
		BytesWritten: res.BytesWritten,
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
