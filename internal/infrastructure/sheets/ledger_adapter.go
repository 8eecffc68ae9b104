package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/owennam/JSHA-master-sub000/internal/config"
	domain "github.com/owennam/JSHA-master-sub000/internal/domain/order"
	"github.com/owennam/JSHA-master-sub000/internal/domain/repository"
	"github.com/owennam/JSHA-master-sub000/pkg/logger"
)

// Fixed column positions in the payment ledger sheet. Rows are appended
// at payment confirmation and never edited, so the layout is stable.
const (
	colCreatedAt = iota
	colOrderID
	colProductName
	colCustomerName
	colCustomerEmail
	colCustomerPhone
	colAddress
	colAddressDetail
	colPostalCode
	colAmount
	colPaymentMethod
	colPaymentKey
	colStatus
)

// LedgerAdapter reads the historical, append-only payment ledger from a
// Google Sheets named range.
type LedgerAdapter struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	readRange     string
	diag          repository.DiagnosticsPublisher
	log           logger.Logger
}

func NewLedgerAdapter(
	ctx context.Context,
	cfg config.SheetsConfig,
	diag repository.DiagnosticsPublisher,
	log logger.Logger,
) (*LedgerAdapter, error) {
	opts := []option.ClientOption{option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope)}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}
	if diag == nil {
		diag = repository.NopDiagnostics{}
	}
	return &LedgerAdapter{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		readRange:     cfg.ReadRange,
		diag:          diag,
		log:           log,
	}, nil
}

// FetchAll reads every row of the configured range. Rows without an
// order id are dropped and counted; no ordering is assumed.
func (a *LedgerAdapter) FetchAll(ctx context.Context) ([]domain.Record, error) {
	resp, err := a.svc.Spreadsheets.Values.Get(a.spreadsheetID, a.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read ledger range %q: %v: %w", a.readRange, err, domain.ErrSourceUnavailable)
	}

	records := make([]domain.Record, 0, len(resp.Values))
	dropped := 0
	for _, row := range resp.Values {
		rec, ok := mapRow(row)
		if !ok {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	if dropped > 0 {
		a.log.Warn("dropped ledger rows without order id",
			logger.Int("count", dropped))
		a.diag.Publish(ctx, domain.Diagnostic{
			EventType:  domain.EventMalformedRecord,
			Source:     domain.SourceLedger,
			Detail:     fmt.Sprintf("%d rows without order id", dropped),
			ObservedAt: time.Now().UTC(),
		})
	}
	return records, nil
}

// mapRow turns one raw sheet row into a ledger record. Short rows are
// tolerated: missing trailing cells read as empty.
func mapRow(row []interface{}) (domain.Record, bool) {
	orderID := cell(row, colOrderID)
	if orderID == "" {
		return domain.Record{}, false
	}
	return domain.Record{
		OrderID:       orderID,
		CreatedAt:     cell(row, colCreatedAt),
		ProductName:   cell(row, colProductName),
		CustomerName:  cell(row, colCustomerName),
		CustomerEmail: cell(row, colCustomerEmail),
		CustomerPhone: cell(row, colCustomerPhone),
		Address:       cell(row, colAddress),
		AddressDetail: cell(row, colAddressDetail),
		PostalCode:    cell(row, colPostalCode),
		Amount:        parseAmount(cell(row, colAmount)),
		PaymentMethod: cell(row, colPaymentMethod),
		PaymentKey:    cell(row, colPaymentKey),
		Status:        domain.NormalizeStatus(cell(row, colStatus)),
		Source:        domain.SourceLedger,
	}, true
}

func cell(row []interface{}, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[idx]))
}

// parseAmount reads a sheet-formatted currency cell ("1,250,000").
// Unreadable cells become 0 rather than failing the row.
func parseAmount(raw string) int64 {
	cleaned := strings.ReplaceAll(raw, ",", "")
	cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "₩"))
	if cleaned == "" {
		return 0
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
