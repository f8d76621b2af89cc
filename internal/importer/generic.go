package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketfin-dev/pocketfin/internal/ledger"
	"github.com/pocketfin-dev/pocketfin/internal/model"
)

// GenericParser parses pocketfin's own CSV export format:
//
//	date,type,from,to,amount,note
//	2025-01-15,expense,bank,groceries,42.50,weekly shop
type GenericParser struct{}

const (
	genericDateFormat = "2006-01-02"
	genericNumFields  = 6
	genericColDate    = 0
	genericColType    = 1
	genericColFrom    = 2
	genericColTo      = 3
	genericColAmount  = 4
	genericColNote    = 5
)

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads the CSV and returns transaction drafts.
func (p *GenericParser) Parse(r io.Reader) ([]ledger.TransactionParams, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = genericNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var drafts []ledger.TransactionParams
	for i, rec := range records[1:] {
		draft, err := parseGenericRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

func parseGenericRow(rec []string) (ledger.TransactionParams, error) {
	date, err := time.Parse(genericDateFormat, rec[genericColDate])
	if err != nil {
		return ledger.TransactionParams{}, fmt.Errorf("parsing date %q: %w", rec[genericColDate], err)
	}

	amount, err := decimal.NewFromString(rec[genericColAmount])
	if err != nil {
		return ledger.TransactionParams{}, fmt.Errorf("parsing amount %q: %w", rec[genericColAmount], err)
	}

	return ledger.TransactionParams{
		Type:      model.Type(rec[genericColType]),
		From:      rec[genericColFrom],
		To:        rec[genericColTo],
		Timestamp: date,
		Amount:    amount,
		Note:      rec[genericColNote],
	}, nil
}
