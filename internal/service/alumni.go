// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses query strings and bodies, writes JSON
//	Service (Business layer) → filters, looks up, aggregates, assigns IDs
//	Repository (Data layer)  → loads and saves the whole collection
//
// Every operation starts from a fresh repository.Load; there is no cache.
// The service never sees HTTP types and the handlers never see the file.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sakif/alumni-search/internal/apperror"
	"github.com/sakif/alumni-search/internal/model"
	"github.com/sakif/alumni-search/internal/repository"
)

// Client-visible messages. They are part of the API contract.
const (
	MsgMissingID = "Missing ID parameter"
	MsgInvalidID = "Invalid ID"
	MsgNotFound  = "Alumni not found"
)

// SearchFilter holds the raw /search parameters. Blank fields impose no
// constraint. Values are trimmed; text filters match case-insensitively.
type SearchFilter struct {
	ID         string
	Name       string
	Department string
	Year       string
	Location   string // matched against Address
	Company    string
}

// AlumniService implements search, lookup, stats and add over a repository.
//
// writeMu serializes Add/AddBulk so two requests in this process cannot read
// the same count and hand out the same ID. Reads take no lock.
type AlumniService struct {
	repo    repository.AlumniRepository
	logger  *slog.Logger
	now     func() time.Time
	writeMu sync.Mutex
}

// NewAlumniService creates a new AlumniService.
func NewAlumniService(repo repository.AlumniRepository, logger *slog.Logger) *AlumniService {
	return &AlumniService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the clock used by Stats. Tests use it to pin the
// current year.
func (s *AlumniService) WithClock(now func() time.Time) *AlumniService {
	s.now = now
	return s
}

// Search returns every record matching all supplied filters, in collection
// order. Records with ID 0 are never returned.
//
// A non-numeric id or year filter cannot match anything, so the result is
// empty rather than an error.
func (s *AlumniService) Search(ctx context.Context, f SearchFilter) ([]model.Record, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	m := newMatcher(f)
	out := make([]model.Record, 0)
	for _, a := range list {
		if a.ID == 0 {
			continue
		}
		if m.matches(a) {
			out = append(out, model.ToRecord(a))
		}
	}
	return out, nil
}

// Contact returns the contact card of the first record whose ID equals rawID.
func (s *AlumniService) Contact(ctx context.Context, rawID string) (*model.ContactCard, error) {
	rawID = strings.TrimSpace(rawID)
	if rawID == "" {
		return nil, apperror.MissingParameter("id", MsgMissingID)
	}
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return nil, apperror.InvalidInput("id", MsgInvalidID)
	}

	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range list {
		if a.ID == id {
			card := model.ToContactCard(a)
			return &card, nil
		}
	}
	return nil, apperror.NotFound(MsgNotFound)
}

// FindByID returns every record with the given ID. IDs are not unique, so
// this can be more than one.
func (s *AlumniService) FindByID(ctx context.Context, id int) ([]model.Record, error) {
	return s.filter(ctx, func(a model.Alumni) bool { return a.ID == id })
}

// FindByYear returns every record of the given graduation year.
func (s *AlumniService) FindByYear(ctx context.Context, year int) ([]model.Record, error) {
	return s.filter(ctx, func(a model.Alumni) bool { return a.Year == year })
}

// Download resolves the /download parameters: a non-blank id wins, then a
// non-blank batch (year). Anything unparsable, or neither parameter, gives
// an empty result and no error.
func (s *AlumniService) Download(ctx context.Context, rawID, rawBatch string) ([]model.Record, error) {
	if rawID = strings.TrimSpace(rawID); rawID != "" {
		id, err := strconv.Atoi(rawID)
		if err != nil {
			return []model.Record{}, nil
		}
		return s.FindByID(ctx, id)
	}
	if rawBatch = strings.TrimSpace(rawBatch); rawBatch != "" {
		year, err := strconv.Atoi(rawBatch)
		if err != nil {
			return []model.Record{}, nil
		}
		return s.FindByYear(ctx, year)
	}
	return []model.Record{}, nil
}

// Stats aggregates the whole collection. See ComputeStats.
func (s *AlumniService) Stats(ctx context.Context) (*StatsReport, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeStats(list, s.now()), nil
}

// Add appends one record and returns the ID it was given: the collection
// size before the insert, plus one. Any ID in rec is ignored.
func (s *AlumniService) Add(ctx context.Context, rec model.Record) (int, error) {
	ids, err := s.AddBulk(ctx, []model.Record{rec})
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// AddBulk appends recs in order with sequential IDs starting at the current
// collection size plus one, then saves once. It returns the assigned IDs.
func (s *AlumniService) AddBulk(ctx context.Context, recs []model.Record) ([]int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(recs))
	next := len(list) + 1
	for _, r := range recs {
		a := r.ToAlumni()
		a.ID = next
		list = append(list, a)
		ids = append(ids, next)
		next++
	}

	if err := s.repo.Save(ctx, list); err != nil {
		s.logger.Error("failed to save alumni collection",
			slog.Int("adding", len(recs)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("saving alumni: %w", err)
	}

	s.logger.Info("alumni added",
		slog.Int("count", len(ids)),
		slog.Int("total", len(list)),
	)
	return ids, nil
}

func (s *AlumniService) load(ctx context.Context) ([]model.Alumni, error) {
	list, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load alumni collection", slog.String("error", err.Error()))
		return nil, fmt.Errorf("loading alumni: %w", err)
	}
	return list, nil
}

func (s *AlumniService) filter(ctx context.Context, keep func(model.Alumni) bool) ([]model.Record, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Record, 0)
	for _, a := range list {
		if keep(a) {
			out = append(out, model.ToRecord(a))
		}
	}
	return out, nil
}

// matcher is a SearchFilter with its values normalized once per request.
type matcher struct {
	id, year                 *int
	idBad, yearBad           bool
	name, dept, loc, company string
}

func newMatcher(f SearchFilter) matcher {
	var m matcher
	m.id, m.idBad = parseOptionalInt(f.ID)
	m.year, m.yearBad = parseOptionalInt(f.Year)
	m.name = normalize(f.Name)
	m.dept = normalize(f.Department)
	m.loc = normalize(f.Location)
	m.company = normalize(f.Company)
	return m
}

func (m matcher) matches(a model.Alumni) bool {
	if m.idBad || m.yearBad {
		return false
	}
	if m.id != nil && a.ID != *m.id {
		return false
	}
	if m.year != nil && a.Year != *m.year {
		return false
	}
	return containsFold(a.Name, m.name) &&
		containsFold(a.Department, m.dept) &&
		containsFold(a.Address, m.loc) &&
		containsFold(a.Company, m.company)
}

// parseOptionalInt returns (nil, false) for a blank value, (&n, false) for a
// number and (nil, true) for anything else.
func parseOptionalInt(raw string) (*int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, true
	}
	return &n, false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// containsFold reports whether needle (already lower-cased) occurs in
// haystack ignoring case. An empty needle always matches.
func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), needle)
}
