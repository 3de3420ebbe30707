package web

import (
	"errors"
	"io"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/cashflow/statement"
)

// LineResponse is one statement line for JSON serialization. Amounts
// are presentation-ready signed values: positive means cash inflow.
type LineResponse struct {
	Category         string          `json:"category,omitempty"`
	Label            string          `json:"label"`
	Amount           decimal.Decimal `json:"amount"`
	IsNonCashAddBack bool            `json:"isNonCashAddBack,omitempty"`
}

// ReconciliationResponse reports computed vs reported ending cash.
// Clients must display the discrepancy whenever it is non-zero rather
// than silently trusting the computed figure.
type ReconciliationResponse struct {
	EndingCashComputed decimal.Decimal `json:"endingCashComputed"`
	EndingCashReported decimal.Decimal `json:"endingCashReported"`
	Discrepancy        decimal.Decimal `json:"discrepancy"`
	WithinTolerance    bool            `json:"withinTolerance"`
}

// StatementResponse is the JSON response structure for the statement
// endpoints.
type StatementResponse struct {
	BeginningCashBalance decimal.Decimal `json:"beginningCashBalance"`

	OperatingActivities []LineResponse  `json:"operatingActivities"`
	OperatingSubtotal   decimal.Decimal `json:"operatingSubtotal"`
	InvestingActivities []LineResponse  `json:"investingActivities"`
	InvestingSubtotal   decimal.Decimal `json:"investingSubtotal"`
	FinancingActivities []LineResponse  `json:"financingActivities"`
	FinancingSubtotal   decimal.Decimal `json:"financingSubtotal"`

	NetCashFlow       decimal.Decimal `json:"netCashFlow"`
	EndingCashBalance decimal.Decimal `json:"endingCashBalance"`

	// DerivedDividendsPaid is an estimate backed out of the
	// retained-earnings movement, not an observed figure.
	DerivedDividendsPaid decimal.Decimal `json:"derivedDividendsPaid"`

	Reconciliation ReconciliationResponse `json:"reconciliation"`
}

// ErrorResponse is the structured error body for precondition
// failures.
type ErrorResponse struct {
	Error                string           `json:"error"`
	Snapshot             string           `json:"snapshot,omitempty"`
	Assets               *decimal.Decimal `json:"assets,omitempty"`
	LiabilitiesAndEquity *decimal.Decimal `json:"liabilitiesAndEquity,omitempty"`
	Delta                *decimal.Decimal `json:"delta,omitempty"`
}

// handleDeriveStatement handles POST requests to /api/statement.
//
// The request body is a period document: profit_loss,
// start_balance_sheet and end_balance_sheet arrays of
// {system_category, value} entries. The response is the derived
// statement.
//
// Error responses:
//   - 400 for an unknown system_category or an unbalanced snapshot
//     (body includes both sums and their delta)
//   - 422 for a snapshot without a cash_equivalents line item
func (s *Server) handleDeriveStatement(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	period, err := s.loader.Parse(body)
	if err != nil {
		writeDeriveError(w, err)
		return
	}

	derived, err := s.engine.Derive(r.Context(), period)
	if err != nil {
		writeDeriveError(w, err)
		return
	}

	writeJSONResponse(w, NewStatementResponse(derived))
}

// handleGetStatement handles GET requests to /api/statement. It serves
// the derivation of the bound scenario file and 404s in stateless
// mode.
func (s *Server) handleGetStatement(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	period := s.period
	s.mu.RUnlock()

	if period == nil {
		http.Error(w, "no scenario file bound to this server", http.StatusNotFound)
		return
	}

	derived, err := s.engine.Derive(r.Context(), period)
	if err != nil {
		writeDeriveError(w, err)
		return
	}

	writeJSONResponse(w, NewStatementResponse(derived))
}

// writeDeriveError maps derivation preconditions onto HTTP statuses.
// Precondition failures indicate bad input data, never transient
// server state, so nothing here is retryable.
func writeDeriveError(w http.ResponseWriter, err error) {
	var unbalanced *statement.UnbalancedSheetError
	if errors.As(err, &unbalanced) {
		writeJSONError(w, http.StatusBadRequest, &ErrorResponse{
			Error:                unbalanced.Error(),
			Snapshot:             string(unbalanced.Snapshot),
			Assets:               &unbalanced.Assets,
			LiabilitiesAndEquity: &unbalanced.LiabilitiesAndEquity,
			Delta:                &unbalanced.Delta,
		})
		return
	}

	var missingCash *statement.MissingCashError
	if errors.As(err, &missingCash) {
		writeJSONError(w, http.StatusUnprocessableEntity, &ErrorResponse{
			Error:    missingCash.Error(),
			Snapshot: string(missingCash.Snapshot),
		})
		return
	}

	var unknownCategory *statement.UnknownCategoryError
	if errors.As(err, &unknownCategory) {
		writeJSONError(w, http.StatusBadRequest, &ErrorResponse{Error: err.Error()})
		return
	}

	writeJSONError(w, http.StatusBadRequest, &ErrorResponse{Error: err.Error()})
}

// NewStatementResponse converts a derived statement to its response form.
func NewStatementResponse(derived *statement.CashFlowStatement) *StatementResponse {
	return &StatementResponse{
		BeginningCashBalance: derived.BeginningCash,
		OperatingActivities:  convertSection(derived.Operating),
		OperatingSubtotal:    derived.Operating.Subtotal,
		InvestingActivities:  convertSection(derived.Investing),
		InvestingSubtotal:    derived.Investing.Subtotal,
		FinancingActivities:  convertSection(derived.Financing),
		FinancingSubtotal:    derived.Financing.Subtotal,
		NetCashFlow:          derived.NetChange,
		EndingCashBalance:    derived.EndingCashComputed,
		DerivedDividendsPaid: derived.DerivedDividendsPaid,
		Reconciliation: ReconciliationResponse{
			EndingCashComputed: derived.EndingCashComputed,
			EndingCashReported: derived.EndingCashReported,
			Discrepancy:        derived.Reconciliation.Discrepancy,
			WithinTolerance:    derived.Reconciliation.WithinTolerance,
		},
	}
}

// convertSection converts one activity section's lines.
func convertSection(section statement.CashFlowSection) []LineResponse {
	lines := make([]LineResponse, len(section.Items))
	for i, item := range section.Items {
		lines[i] = LineResponse{
			Category:         item.Category.String(),
			Label:            item.Label,
			Amount:           item.Amount,
			IsNonCashAddBack: item.IsNonCashAddBack,
		}
	}
	return lines
}
