package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/bobmcallan/stocklens/internal/interfaces"
	"github.com/bobmcallan/stocklens/internal/models"
)

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *errorBody           `json:"error"`
	} `json:"quoteSummary"`
}

type quoteSummaryResult struct {
	IncomeStatementHistory *struct {
		Items []map[string]json.RawMessage `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistory"`
	BalanceSheetHistory *struct {
		Items []map[string]json.RawMessage `json:"balanceSheetStatements"`
	} `json:"balanceSheetHistory"`
	CashflowStatementHistory *struct {
		Items []map[string]json.RawMessage `json:"cashflowStatements"`
	} `json:"cashflowStatementHistory"`
	FinancialData        map[string]json.RawMessage `json:"financialData"`
	DefaultKeyStatistics map[string]json.RawMessage `json:"defaultKeyStatistics"`
}

// GetFundamentals retrieves statement history and ratios from
// /v10/finance/quoteSummary. A missing result or populated error is reported
// as models.ErrMalformedResponse.
func (c *Client) GetFundamentals(ctx context.Context, symbol string, modules []string) (*models.Fundamentals, error) {
	if len(modules) == 0 {
		modules = models.FundamentalModules
	}

	params := url.Values{}
	params.Set("modules", strings.Join(modules, ","))

	path := "/v10/finance/quoteSummary/" + url.PathEscape(symbol)

	var resp quoteSummaryResponse
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("%w: quoteSummary %s: %s", models.ErrMalformedResponse, symbol, resp.QuoteSummary.Error)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: no quoteSummary result for %s", models.ErrMalformedResponse, symbol)
	}

	r := resp.QuoteSummary.Result[0]
	f := &models.Fundamentals{
		Symbol:        strings.ToUpper(symbol),
		FinancialData: numericFields(r.FinancialData),
		KeyStatistics: numericFields(r.DefaultKeyStatistics),
	}
	if raw, ok := r.FinancialData["financialCurrency"]; ok {
		_ = json.Unmarshal(raw, &f.Currency)
	}
	if r.IncomeStatementHistory != nil {
		f.IncomeStatements = convertStatements(r.IncomeStatementHistory.Items)
	}
	if r.BalanceSheetHistory != nil {
		f.BalanceSheets = convertStatements(r.BalanceSheetHistory.Items)
	}
	if r.CashflowStatementHistory != nil {
		f.CashflowStatement = convertStatements(r.CashflowStatementHistory.Items)
	}

	return f, nil
}

// convertStatements turns raw statement rows into Statements ordered oldest first.
func convertStatements(items []map[string]json.RawMessage) []models.Statement {
	out := make([]models.Statement, 0, len(items))
	for _, item := range items {
		st := models.Statement{Values: numericFields(item)}
		if end, ok := st.Values["endDate"]; ok {
			st.EndDate = time.Unix(int64(end), 0).UTC()
			delete(st.Values, "endDate")
		}
		out = append(out, st)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EndDate.Before(out[j].EndDate)
	})
	return out
}

// numericFields keeps every field that carries a number, either bare or in
// Yahoo's {"raw": n, "fmt": "..."} wrapper. maxAge is bookkeeping and dropped.
func numericFields(fields map[string]json.RawMessage) map[string]float64 {
	out := make(map[string]float64, len(fields))
	for key, raw := range fields {
		if key == "maxAge" {
			continue
		}
		if v, ok := rawNumber(raw); ok {
			out[key] = v
		}
	}
	return out
}

func rawNumber(raw json.RawMessage) (float64, bool) {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}
	var wrapped struct {
		Raw *float64 `json:"raw"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Raw != nil {
		return *wrapped.Raw, true
	}
	return 0, false
}

// Ensure Client implements FundamentalsClient
var _ interfaces.FundamentalsClient = (*Client)(nil)
