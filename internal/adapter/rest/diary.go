package rest

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/eslsoft/tutorpad/internal/adapter/mapping"
	"github.com/eslsoft/tutorpad/internal/entity"
	"github.com/eslsoft/tutorpad/internal/repository"
	"github.com/eslsoft/tutorpad/internal/usecase"
	"github.com/eslsoft/tutorpad/internal/usecase/backup"
)

// DiaryHandler serves the learning diary.
type DiaryHandler struct {
	uc       usecase.DiaryUsecase
	exporter *backup.Service
}

func NewDiaryHandler(uc usecase.DiaryUsecase, exporter *backup.Service) *DiaryHandler {
	return &DiaryHandler{uc: uc, exporter: exporter}
}

// ListEntries accepts filter, order_by, page_no and page_size query parameters.
func (h *DiaryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pageNo, err := parseInt32(q.Get("page_no"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid page_no")
		return
	}
	pageSize, err := parseInt32(q.Get("page_size"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid page_size")
		return
	}

	query := &repository.ListDiaryQuery{
		Pagination:  repository.Pagination{PageNo: pageNo, PageSize: pageSize},
		FilterOrder: repository.FilterOrder{Filter: q.Get("filter"), OrderBy: q.Get("order_by")},
	}
	entries, total, err := h.uc.ListEntries(r.Context(), query)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, mapping.ListDiaryResponse{
		Entries:  mapping.ToDiaryResponses(entries),
		Total:    total,
		PageNo:   pageNo,
		PageSize: pageSize,
	})
}

func (h *DiaryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req mapping.DiaryEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	draft, err := mapping.ToDiaryDraft(req)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	created, err := h.uc.CreateEntry(r.Context(), draft)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, mapping.ToDiaryResponse(created))
}

func (h *DiaryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.uc.GetEntry(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, mapping.ToDiaryResponse(entry))
}

func (h *DiaryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req mapping.DiaryEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	patch, err := mapping.ToDiaryPatch(req)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	updated, err := h.uc.UpdateEntry(r.Context(), mux.Vars(r)["id"], patch)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, mapping.ToDiaryResponse(updated))
}

func (h *DiaryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.DeleteEntry(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondWithDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type dateLookupResponse struct {
	Date  string                      `json:"date"`
	Entry *mapping.DiaryEntryResponse `json:"entry"`
}

// FindByDate answers with a null entry when the day has none.
func (h *DiaryHandler) FindByDate(w http.ResponseWriter, r *http.Request) {
	date, err := entity.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	entry, err := h.uc.FindByDate(r.Context(), date)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, dateLookupResponse{Date: date.String(), Entry: mapping.ToDiaryResponse(entry)})
}

func (h *DiaryHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	year, _ := strconv.Atoi(vars["year"])
	month, _ := strconv.Atoi(vars["month"])

	grid, err := h.uc.MonthGrid(r.Context(), year, time.Month(month))
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, mapping.ToCalendarResponse(grid))
}

// Export streams the diary as NDJSON, gzip-compressed when gzip=true.
func (h *DiaryHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	gzipEnabled, _ := strconv.ParseBool(q.Get("gzip"))

	var buf bytes.Buffer
	opts := []backup.ExportOption{backup.WithFilter(q.Get("filter")), backup.WithOrderBy(q.Get("order_by"))}
	if gzipEnabled {
		gz := gzip.NewWriter(&buf)
		if err := h.exporter.Export(r.Context(), gz, opts...); err != nil {
			respondWithDomainError(w, err)
			return
		}
		if err := gz.Close(); err != nil {
			respondWithDomainError(w, err)
			return
		}
	} else if err := h.exporter.Export(r.Context(), &buf, opts...); err != nil {
		respondWithDomainError(w, err)
		return
	}

	filename := fmt.Sprintf("tutorpad-diary-%s.jsonl", time.Now().UTC().Format("20060102-150405"))
	contentType := "application/x-ndjson"
	if gzipEnabled {
		filename += ".gz"
		contentType = "application/gzip"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func parseInt32(raw string) (int32, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	return int32(v), nil
}
