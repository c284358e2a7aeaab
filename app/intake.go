package app

import (
	"context"

	"regdash/domain/intake"
	"regdash/domain/roster"
	"regdash/internal/logging"
	"regdash/internal/mockdata"
	"regdash/ports"
)

// RegisterRequest carries the raw fields of one registration submission.
type RegisterRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Team    string `json:"team"`
	Event   string `json:"event"`
	College string `json:"college"`
}

// IntakeConfig tunes the intake service.
type IntakeConfig struct {
	// WriteToSheets gates the optional append to the intake tab.
	WriteToSheets bool
	IntakeTab     string
}

// IntakeService accepts new registrations: it writes to the durable store,
// optionally appends to the spreadsheet intake tab, and optionally sends a
// confirmation email. Store failures degrade to the in-memory demo counters
// so the dashboard keeps moving.
type IntakeService struct {
	repo     ports.RegistrationRepository // nil when the database is disabled
	sheets   ports.SheetSource            // nil when the spreadsheet is disabled
	email    ports.EmailSender            // nil when confirmation email is disabled
	fallback *mockdata.Store
	cfg      IntakeConfig
	logger   *logging.Logger
}

// NewIntakeService wires an intake service. Any of repo, sheets, and email
// may be nil; their steps are skipped.
func NewIntakeService(repo ports.RegistrationRepository, sheets ports.SheetSource, email ports.EmailSender, fallback *mockdata.Store, cfg IntakeConfig) *IntakeService {
	if cfg.IntakeTab == "" {
		cfg.IntakeTab = "Sheet1"
	}
	if fallback == nil {
		fallback = mockdata.NewStore()
	}
	return &IntakeService{
		repo:     repo,
		sheets:   sheets,
		email:    email,
		fallback: fallback,
		cfg:      cfg,
		logger:   logging.DefaultLogger,
	}
}

// Register persists one registration. Blank fields default to "Unknown".
// Downstream failures (store, sheet, email) are logged and absorbed; the
// registration itself always succeeds.
func (s *IntakeService) Register(ctx context.Context, req RegisterRequest) (*intake.Registration, error) {
	reg := intake.New(req.Name, req.Email, req.Team, req.Event, req.College)

	if s.repo != nil {
		if err := s.repo.Create(ctx, reg); err != nil {
			s.logger.Warn("[Intake] Database unavailable, counting in memory: %v", err)
			s.fallback.Increment(reg.Team)
		} else {
			s.logger.Info("[Intake] Registration %s saved", reg.ID)
		}
	} else {
		s.fallback.Increment(reg.Team)
	}

	if s.cfg.WriteToSheets && s.sheets != nil {
		s.appendToSheet(ctx, reg)
	}

	if s.email != nil {
		if err := s.email.SendConfirmation(ctx, reg); err != nil {
			s.logger.Warn("[Intake] Confirmation email failed for %s: %v", reg.Email, err)
		}
	}

	return reg, nil
}

func (s *IntakeService) appendToSheet(ctx context.Context, reg *intake.Registration) {
	if err := s.sheets.EnsureHeader(ctx, s.cfg.IntakeTab, roster.IntakeHeader); err != nil {
		s.logger.Warn("[Intake] Could not ensure intake header: %v", err)
	}

	row := []string{
		reg.Name,
		reg.Email,
		reg.Team,
		reg.Event,
		reg.College,
		reg.CreatedAt.Format("1/2/2006 15:04:05"),
	}
	if err := s.sheets.Append(ctx, s.cfg.IntakeTab, row); err != nil {
		s.logger.Warn("[Intake] Spreadsheet append failed: %v", err)
		return
	}
	s.logger.Info("[Intake] Registration appended to %q", s.cfg.IntakeTab)
}

// Fallback exposes the in-memory demo store shared with the HTTP layer.
func (s *IntakeService) Fallback() *mockdata.Store {
	return s.fallback
}
