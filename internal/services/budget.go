package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"

	"tripdesk-backend/internal/models"
	"tripdesk-backend/internal/storage"
)

// wizardBudgetKey is the legacy key embedded in trip descriptions by the
// old planning wizard, superseded by the budgets table
const wizardBudgetKey = "wizardBudget"

// BudgetService maintains the one-row-per-trip budget and migrates legacy
// wizard budgets out of the description column
type BudgetService struct {
	store storage.Store
}

// NewBudgetService creates a new budget service
func NewBudgetService(store storage.Store) *BudgetService {
	return &BudgetService{store: store}
}

// GetBudget returns the trip's budget, or the defaults (0, JPY) when no row
// exists. The read never creates a row.
func (s *BudgetService) GetBudget(ctx context.Context, userID, tripID string) (*models.Budget, error) {
	if _, err := authorizeTrip(ctx, s.store, tripID, userID, false); err != nil {
		return nil, err
	}
	budget, err := s.store.GetBudget(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if budget == nil {
		return &models.Budget{TripID: tripID, Amount: 0, Currency: defaultCurrency}, nil
	}
	return budget, nil
}

// UpdateBudgetInput is a partial budget payload; at least one field must be set
type UpdateBudgetInput struct {
	Amount   *float64 `json:"amount,omitempty"`
	Currency *string  `json:"currency,omitempty"`
}

// UpdateBudget merges the payload with the stored row (or the defaults) and
// writes the result through an upsert keyed on trip_id, so exactly one row
// per trip exists no matter how often this is called.
func (s *BudgetService) UpdateBudget(ctx context.Context, userID, tripID string, input UpdateBudgetInput) (*models.Budget, error) {
	if input.Amount == nil && input.Currency == nil {
		return nil, validationErrorf("at least one of amount or currency is required")
	}
	if input.Amount != nil && !finiteAmount(*input.Amount) {
		return nil, validationErrorf("amount must be a non-negative number")
	}
	if input.Currency != nil && normalizeCurrency(*input.Currency) == "" {
		return nil, validationErrorf("currency must not be empty")
	}
	if _, err := authorizeTrip(ctx, s.store, tripID, userID, true); err != nil {
		return nil, err
	}

	current, err := s.store.GetBudget(ctx, tripID)
	if err != nil {
		return nil, err
	}
	next := models.Budget{TripID: tripID, Amount: 0, Currency: defaultCurrency}
	if current != nil {
		next.Amount = current.Amount
		next.Currency = current.Currency
	}
	if input.Amount != nil {
		next.Amount = *input.Amount
	}
	if input.Currency != nil {
		next.Currency = normalizeCurrency(*input.Currency)
	}

	if err := s.store.UpsertBudget(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// MigrationOutcome classifies one trip's migration result
type MigrationOutcome string

const (
	OutcomeMigrated MigrationOutcome = "migrated"
	OutcomeSkipped  MigrationOutcome = "skipped"
	OutcomeFailed   MigrationOutcome = "failed"
)

// MigrationResult is the per-trip record of a migration run
type MigrationResult struct {
	TripID  string           `json:"trip_id"`
	Outcome MigrationOutcome `json:"outcome"`
	Reason  string           `json:"reason,omitempty"`
}

// MigrationReport summarizes a migration run
type MigrationReport struct {
	Migrated int               `json:"migrated"`
	Skipped  int               `json:"skipped"`
	Failed   int               `json:"failed"`
	Results  []MigrationResult `json:"results"`
}

// MigrateWizardBudgets moves legacy wizard budgets out of the description
// column for every trip the user owns. Trips whose description is empty or
// not JSON, or carries no wizardBudget key, are skipped; that makes a second
// run over already-migrated trips a no-op. The budget upsert is the
// operation of record: rewriting the cleaned description is best-effort and
// its failure does not demote a trip from migrated.
func (s *BudgetService) MigrateWizardBudgets(ctx context.Context, ownerID string) (*MigrationReport, error) {
	trips, err := s.store.ListTripsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	report := &MigrationReport{}
	for _, trip := range trips {
		result := s.migrateTrip(ctx, trip)
		switch result.Outcome {
		case OutcomeMigrated:
			report.Migrated++
		case OutcomeSkipped:
			report.Skipped++
		default:
			report.Failed++
		}
		report.Results = append(report.Results, result)
	}
	log.Info().Str("owner_id", ownerID).
		Int("migrated", report.Migrated).Int("skipped", report.Skipped).Int("failed", report.Failed).
		Msg("Wizard budget migration finished")
	return report, nil
}

func (s *BudgetService) migrateTrip(ctx context.Context, trip *models.Trip) MigrationResult {
	if strings.TrimSpace(trip.Description) == "" {
		return MigrationResult{TripID: trip.ID, Outcome: OutcomeSkipped, Reason: "empty description"}
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trip.Description), &payload); err != nil {
		return MigrationResult{TripID: trip.ID, Outcome: OutcomeSkipped, Reason: "description is not JSON"}
	}
	raw, ok := payload[wizardBudgetKey]
	if !ok {
		return MigrationResult{TripID: trip.ID, Outcome: OutcomeSkipped, Reason: "no wizard budget"}
	}

	budget := parseWizardBudget(raw)
	budget.TripID = trip.ID
	if err := s.store.UpsertBudget(ctx, budget); err != nil {
		return MigrationResult{TripID: trip.ID, Outcome: OutcomeFailed, Reason: err.Error()}
	}

	// Sibling keys survive the rewrite verbatim.
	delete(payload, wizardBudgetKey)
	cleaned, err := json.Marshal(payload)
	if err == nil {
		err = s.store.UpdateTripDescription(ctx, trip.ID, string(cleaned))
	}
	if err != nil {
		log.Warn().Err(err).Str("trip_id", trip.ID).Msg("Failed to rewrite cleaned description")
	}
	return MigrationResult{TripID: trip.ID, Outcome: OutcomeMigrated}
}

// parseWizardBudget extracts {amount?, currency?} from the legacy object,
// falling back to the defaults field by field when values are malformed
func parseWizardBudget(raw json.RawMessage) *models.Budget {
	budget := &models.Budget{Amount: 0, Currency: defaultCurrency}

	var wizard struct {
		Amount   *float64 `json:"amount"`
		Currency *string  `json:"currency"`
	}
	if err := json.Unmarshal(raw, &wizard); err != nil {
		return budget
	}
	if wizard.Amount != nil && finiteAmount(*wizard.Amount) {
		budget.Amount = *wizard.Amount
	}
	if wizard.Currency != nil {
		if currency := normalizeCurrency(*wizard.Currency); currency != "" {
			budget.Currency = currency
		}
	}
	return budget
}
