package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/riddler9999/recapflow/internal/recap"
)

// allowedExtensions is the video container allow-list for uploads.
var allowedExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".webm": true,
	".wmv":  true,
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpload accepts a multipart video upload and registers a job.
// Processing does not start until /api/process/{id} is called.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(s.cfg.Upload.MaxSizeMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	file, header, err := r.FormFile("video")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds %dMB limit", s.cfg.Upload.MaxSizeMB))
			return
		}
		writeError(w, http.StatusBadRequest, "missing video file")
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported file type %q", ext))
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		title = strings.TrimSuffix(filename, ext)
	}
	genre := strings.TrimSpace(r.FormValue("genre"))
	if genre == "" {
		genre = s.cfg.Upload.DefaultGenre
	}

	destPath := filepath.Join(s.cfg.Paths.Uploads, uuid.NewString()+ext)
	dest, err := os.Create(destPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not store upload")
		return
	}
	if _, err := io.Copy(dest, file); err != nil {
		dest.Close()
		os.Remove(destPath)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds %dMB limit", s.cfg.Upload.MaxSizeMB))
			return
		}
		writeError(w, http.StatusInternalServerError, "could not store upload")
		return
	}
	if err := dest.Close(); err != nil {
		writeError(w, http.StatusInternalServerError, "could not store upload")
		return
	}

	snap, err := s.orch.Create(r.Context(), destPath, filename, title, genre)
	if err != nil {
		os.Remove(destPath)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, snap)
}

// handleProcess starts the pipeline for an uploaded job. The run happens in
// the background; callers poll /api/status/{id}.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	snap, err := s.orch.Status(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if snap.Status.Terminal() {
		writeError(w, http.StatusConflict, fmt.Sprintf("job already %s", snap.Status))
		return
	}

	s.startRun(id)
	writeJSON(w, http.StatusAccepted, snap)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	snap, err := s.orch.Status(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	path, err := s.orch.Result(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "recap_"+id+".mp4"))
	http.ServeFile(w, r, path)
}

func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	title, narration, err := s.orch.ScriptText(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"id":     id,
		"title":  title,
		"script": narration,
	})
}

func (s *Server) handleScriptDocx(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, _, err := s.orch.ScriptText(id); err != nil {
		writeDomainError(w, err)
		return
	}

	path := filepath.Join(s.cfg.Paths.Output, id, "recap_script.docx")
	if _, err := os.Stat(path); err != nil {
		writeDomainError(w, recap.ErrNotReady)
		return
	}
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "recap_script_"+id+".docx"))
	http.ServeFile(w, r, path)
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	segments, err := s.orch.Transcript(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":       id,
		"segments": segments,
	})
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"jobs": s.orch.List()})
}
