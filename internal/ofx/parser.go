// Package ofx converts OFX/QFX bank statements into transaction candidates
// so bulk imports flow through the same dedupe pipeline as message
// extraction.
package ofx

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/boltpappu0224/finance-tracker/internal/common"
	"github.com/boltpappu0224/finance-tracker/internal/model"
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Fix missing closing angle brackets in SGML-style OFX files
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX statement and returns transaction candidates
// with import origin.
func (p *Parser) ParseFile(reader io.Reader) ([]model.TransactionCandidate, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	processedContent := p.preprocessOFX(string(content))

	resp, err := ofxgo.ParseResponse(strings.NewReader(processedContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var candidates []model.TransactionCandidate
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			candidates = append(candidates, p.processStatement(stmt.BankTranList, string(stmt.BankAcctFrom.AcctID))...)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			candidates = append(candidates, p.processStatement(stmt.BankTranList, string(stmt.CCAcctFrom.AcctID))...)
		}
	}

	common.LogInfo("Parsed OFX file", common.Fields{
		"candidates":      len(candidates),
		"bank_statements": bankStmts,
		"cc_statements":   ccStmts,
	})

	return candidates, nil
}

func (p *Parser) processStatement(list *ofxgo.TransactionList, accountID string) []model.TransactionCandidate {
	if list == nil {
		return nil
	}

	candidates := make([]model.TransactionCandidate, 0, len(list.Transactions))
	for _, ofxTx := range list.Transactions {
		candidates = append(candidates, p.convertTransaction(ofxTx, accountID))
	}
	return candidates
}

// convertTransaction converts one OFX transaction to a candidate. OFX signs
// debits negative; the candidate carries a positive amount plus a direction.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, accountID string) model.TransactionCandidate {
	amount := decimal.NewFromBigRat(&ofxTx.TrnAmt.Rat, 2)

	direction := model.DirectionIncome
	if amount.IsNegative() {
		direction = model.DirectionExpense
		amount = amount.Neg()
	}

	counterparty := p.extractCounterparty(ofxTx)

	hint, _ := categoryForType(fmt.Sprintf("%v", ofxTx.TrnType))

	now := time.Now()
	return model.TransactionCandidate{
		ID:           string(ofxTx.FiTID),
		Date:         ofxTx.DtPosted.Time,
		Amount:       amount,
		Direction:    direction,
		Counterparty: counterparty,
		Description:  strings.TrimSpace(string(ofxTx.Name)),
		CategoryHint: hint,
		Origin:       model.OriginImport,
		Provenance: model.Provenance{
			ExtractedAt:  now,
			SourceFamily: "ofx",
			BankName:     accountID,
			Reference:    string(ofxTx.FiTID),
		},
	}
}

// categoryForType infers a coarse category from the OFX transaction type.
func categoryForType(trnType string) (string, bool) {
	switch trnType {
	case "INT":
		return "investment_income", true
	case "FEE":
		return "bills", true
	case "ATM":
		return "cash_withdrawal", true
	}
	return "", false
}

// extractCounterparty tries to get a clean counterparty name from OFX data.
func (p *Parser) extractCounterparty(tx ofxgo.Transaction) string {
	// Prefer PAYEE if available (cleaner merchant name)
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)

	// Sometimes MEMO has better merchant info
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Strip leading "MM/DD " date fragments
	if len(name) > 6 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return strings.TrimSpace(name)
}

// isGenericDescription reports whether a NAME field carries no merchant
// information.
func isGenericDescription(name string) bool {
	generic := []string{
		"PURCHASE",
		"POS PURCHASE",
		"DEBIT",
		"CREDIT",
		"PAYMENT",
		"WITHDRAWAL",
		"DEPOSIT",
	}

	upper := strings.TrimSpace(strings.ToUpper(name))
	for _, g := range generic {
		if upper == g {
			return true
		}
	}
	return false
}
