package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/sakif/alumni-search/internal/model"
	"github.com/sakif/alumni-search/internal/service"
)

// AlumniService is what the handlers need from the service layer.
// *service.AlumniService satisfies it; tests may pass a stub.
type AlumniService interface {
	Search(ctx context.Context, f service.SearchFilter) ([]model.Record, error)
	Contact(ctx context.Context, rawID string) (*model.ContactCard, error)
	Download(ctx context.Context, rawID, rawBatch string) ([]model.Record, error)
	Stats(ctx context.Context) (*service.StatsReport, error)
	Add(ctx context.Context, rec model.Record) (int, error)
	AddBulk(ctx context.Context, recs []model.Record) ([]int, error)
}

var _ AlumniService = (*service.AlumniService)(nil)

var (
	errEmptyBody = errors.New("request body is empty or null")
	errNullEntry = errors.New("request array contains null")
	errTrailing  = errors.New("request body has data after the JSON value")
)

// AlumniHandler serves the alumni endpoints.
type AlumniHandler struct {
	svc    AlumniService
	logger *slog.Logger
}

// NewAlumniHandler creates a new AlumniHandler.
func NewAlumniHandler(svc AlumniService, logger *slog.Logger) *AlumniHandler {
	return &AlumniHandler{svc: svc, logger: logger}
}

// HandleSearch filters the collection.
//
// HTTP: GET /search?id=&name=&department=&year=&location=&company=
//
// Always answers with an array, [] when nothing matches.
func (h *AlumniHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	results, err := h.svc.Search(r.Context(), service.SearchFilter{
		ID:         lastValue(q, "id"),
		Name:       lastValue(q, "name"),
		Department: lastValue(q, "department"),
		Year:       lastValue(q, "year"),
		Location:   lastValue(q, "location"),
		Company:    lastValue(q, "company"),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// HandleContact returns {ID, Name, Email, Phone} for the first record with
// the requested id.
//
// HTTP: GET /contact?id=
func (h *AlumniHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	card, err := h.svc.Contact(r.Context(), lastValue(r.URL.Query(), "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// HandleStats returns the aggregated statistics.
//
// HTTP: GET /stats
func (h *AlumniHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Stats(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleDownload returns the records for one id or one batch year.
//
// HTTP: GET /download?id=   or   GET /download?batch=
func (h *AlumniHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	results, err := h.svc.Download(r.Context(), lastValue(q, "id"), lastValue(q, "batch"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// HandleAdd appends one record.
//
// HTTP: POST /add
// REQUEST BODY: {"Name": "...", "Department": "...", "Year": 2024, ...}
//
// A body that is empty, null, not a JSON object, or followed by anything
// other than whitespace answers
// {"Status": "Error"} with 200; the decode error is only logged.
// A storage failure answers the same body with 500.
func (h *AlumniHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var rec *model.Record
	if err := decodeBody(r.Body, &rec); err != nil || rec == nil {
		h.logBadBody("add", err)
		writeStatus(w, http.StatusOK, StatusError)
		return
	}

	id, err := h.svc.Add(r.Context(), *rec)
	if err != nil {
		writeStatus(w, http.StatusInternalServerError, StatusError)
		return
	}

	h.logger.Debug("alumni record added", slog.Int("id", id))
	writeStatus(w, http.StatusOK, StatusSuccess)
}

// HandleAddBulk appends an array of records with sequential IDs.
//
// HTTP: POST /add-bulk
// REQUEST BODY: [{"Name": "..."}, {"Name": "..."}]
func (h *AlumniHandler) HandleAddBulk(w http.ResponseWriter, r *http.Request) {
	var recs []*model.Record
	if err := decodeBody(r.Body, &recs); err != nil || recs == nil {
		h.logBadBody("add-bulk", err)
		writeStatus(w, http.StatusOK, StatusError)
		return
	}

	batch := make([]model.Record, 0, len(recs))
	for _, rec := range recs {
		if rec == nil {
			h.logBadBody("add-bulk", errNullEntry)
			writeStatus(w, http.StatusOK, StatusError)
			return
		}
		batch = append(batch, *rec)
	}

	ids, err := h.svc.AddBulk(r.Context(), batch)
	if err != nil {
		writeStatus(w, http.StatusInternalServerError, StatusError)
		return
	}

	h.logger.Debug("alumni records added", slog.Int("count", len(ids)))
	writeStatus(w, http.StatusOK, StatusSuccess)
}

// decodeBody decodes exactly one JSON value from body into v. Anything but
// whitespace after that value is an error.
func decodeBody(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailing
	}
	return nil
}

// lastValue returns the last value of a repeated query parameter, or ""
// when it is absent.
func lastValue(q url.Values, key string) string {
	vs := q[key]
	if len(vs) == 0 {
		return ""
	}
	return vs[len(vs)-1]
}

func (h *AlumniHandler) logBadBody(endpoint string, err error) {
	if err == nil {
		err = errEmptyBody
	}
	h.logger.Warn("invalid request body",
		slog.String("endpoint", endpoint),
		slog.String("error", err.Error()),
	)
}
