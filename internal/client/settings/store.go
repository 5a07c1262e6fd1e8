// Package settings persists the sender profile and the product catalog.
//
// The profile is a single JSON record in the metadata repository. It is
// read once at startup, merged onto the built-in defaults and overwritten
// as a whole on every change. Subscribers registered with OnChange see the
// new profile after each successful save.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/cakeinvoice/internal/logging"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Metadata keys.
const (
	KeySettings   = "invoice-settings"
	KeyDefaultDir = "defaultDir"
)

var (
	ErrCorrupt         = errors.New("stored settings are corrupt")
	ErrInvalidSettings = errors.New("invalid settings")
	ErrInvalidProduct  = errors.New("product needs a name and a positive price")
	ErrProductNotFound = errors.New("product not found")
)

type Store struct {
	repo     metadata.Repository
	log      logging.Logger
	validate *validator.Validate

	mu      sync.Mutex
	current models.Settings
	subs    []func(models.Settings)
}

func NewStore(repo metadata.Repository, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{
		repo:     repo,
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		current:  models.DefaultSettings(),
	}
}

// Load reads the stored profile. It never fails: a missing, unreadable or
// corrupt record yields the defaults and a warning.
func (s *Store) Load(ctx context.Context) models.Settings {
	loaded := models.DefaultSettings()

	raw, err := s.repo.Get(ctx, KeySettings)
	switch {
	case err != nil:
		s.log.Warn(ctx, "reading settings failed, using defaults", "err", err)
	case raw != nil:
		merged, err := MergeWithDefaults(raw)
		if err != nil {
			s.log.Warn(ctx, "stored settings ignored", "err", err)
		}
		loaded = merged
	}

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()
	return clone(loaded)
}

// Current returns the last loaded or saved profile.
func (s *Store) Current() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.current)
}

// Save validates v and overwrites the stored record.
func (s *Store) Save(ctx context.Context, v models.Settings) error {
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if v.Products == nil {
		v.Products = []models.Product{}
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.repo.Set(ctx, KeySettings, data); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = clone(v)
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(clone(v))
	}
	return nil
}

// Update applies fn to a copy of the current profile and saves the result.
func (s *Store) Update(ctx context.Context, fn func(*models.Settings)) (models.Settings, error) {
	next := s.Current()
	fn(&next)
	if err := s.Save(ctx, next); err != nil {
		return s.Current(), err
	}
	return next, nil
}

// OnChange registers fn to run after every successful Save.
func (s *Store) OnChange(fn func(models.Settings)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// AddProduct appends p to the catalog under a fresh id.
func (s *Store) AddProduct(ctx context.Context, p models.Product) (models.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" || !(p.Price > 0) {
		return models.Product{}, ErrInvalidProduct
	}
	p.ID = uuid.NewString()

	_, err := s.Update(ctx, func(st *models.Settings) {
		st.Products = append(st.Products, p)
	})
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// AddProducts appends every valid entry of ps and returns how many were kept.
func (s *Store) AddProducts(ctx context.Context, ps []models.Product) (int, error) {
	var keep []models.Product
	for _, p := range ps {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" || p.Price < 0 {
			continue
		}
		p.ID = uuid.NewString()
		keep = append(keep, p)
	}
	if len(keep) == 0 {
		return 0, nil
	}
	_, err := s.Update(ctx, func(st *models.Settings) {
		st.Products = append(st.Products, keep...)
	})
	if err != nil {
		return 0, err
	}
	return len(keep), nil
}

func (s *Store) RemoveProduct(ctx context.Context, id string) error {
	if _, ok := s.Current().FindProduct(id); !ok {
		return ErrProductNotFound
	}
	_, err := s.Update(ctx, func(st *models.Settings) {
		st.Products = slices.DeleteFunc(st.Products, func(p models.Product) bool { return p.ID == id })
	})
	return err
}

// RememberedDir returns the folder chosen with "savedir", or "".
func (s *Store) RememberedDir(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, KeyDefaultDir)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// SetRememberedDir stores dir; an empty dir forgets it.
func (s *Store) SetRememberedDir(ctx context.Context, dir string) error {
	if dir == "" {
		return s.repo.Delete(ctx, KeyDefaultDir)
	}
	return s.repo.Set(ctx, KeyDefaultDir, []byte(dir))
}

func clone(v models.Settings) models.Settings {
	v.Products = slices.Clone(v.Products)
	if v.Products == nil {
		v.Products = []models.Product{}
	}
	return v
}

// SpreadsheetID returns the ledger spreadsheet created earlier, or "".
func (s *Store) SpreadsheetID() string {
	return s.Current().GoogleSheetsID
}

// SetSpreadsheetID remembers the ledger spreadsheet.
func (s *Store) SetSpreadsheetID(ctx context.Context, id string) error {
	_, err := s.Update(ctx, func(st *models.Settings) { st.GoogleSheetsID = id })
	return err
}
