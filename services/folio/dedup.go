package folio

import (
	"strings"

	"hotelops/models"

	"github.com/shopspring/decimal"
)

// Reference prefixes written by the kitchen and guest-services modules when they
// mirror a charge into the ledger.
const (
	ServiceReferencePrefix = "SVC-"
	OrderReferencePrefix   = "ORD-"

	serviceChargePrefix = "Service Charge:"
	serviceChargePhrase = "service charge"
	referenceSuffixLen  = 6
)

// amountTolerance is the largest difference, in currency units, at which a
// system-generated service charge is still taken to mirror a guest service.
var amountTolerance = decimal.NewFromInt(1)

// SourceIndex holds the correlation signals of one folio's food orders and guest
// services. It is built once per deduplication pass.
type SourceIndex struct {
	linkedTxIDs      map[string]struct{}
	sourceIDs        map[string]struct{}
	serviceSuffixes  []string
	orderNumbers     []string
	serviceAmounts   []decimal.Decimal
	serviceTypeTexts []string
	hasServices      bool
}

// NewSourceIndex indexes the structured records a ledger line may duplicate.
func NewSourceIndex(foodOrders []models.FoodOrder, guestServices []models.GuestService) *SourceIndex {
	idx := &SourceIndex{
		linkedTxIDs: make(map[string]struct{}),
		sourceIDs:   make(map[string]struct{}),
		hasServices: len(guestServices) > 0,
	}
	for _, svc := range guestServices {
		if svc.TransactionID != "" {
			idx.linkedTxIDs[svc.TransactionID] = struct{}{}
		}
		if svc.ID != "" {
			idx.sourceIDs[svc.ID] = struct{}{}
			idx.serviceSuffixes = append(idx.serviceSuffixes, ServiceReferenceSuffix(svc.ID))
		}
		idx.serviceAmounts = append(idx.serviceAmounts, NormalizeServiceAmount(svc))
		if text := serviceTypeText(svc.ServiceType); text != "" {
			idx.serviceTypeTexts = append(idx.serviceTypeTexts, text)
		}
	}
	for _, order := range foodOrders {
		if order.TransactionID != "" {
			idx.linkedTxIDs[order.TransactionID] = struct{}{}
		}
		if order.ID != "" {
			idx.sourceIDs[order.ID] = struct{}{}
		}
		if order.OrderNumber != "" {
			idx.orderNumbers = append(idx.orderNumbers, order.OrderNumber)
		}
	}
	return idx
}

// ServiceReferenceSuffix is the uppercased last six characters of a guest
// service ID, as embedded in SVC- ledger references.
func ServiceReferenceSuffix(serviceID string) string {
	runes := []rune(serviceID)
	if len(runes) > referenceSuffixLen {
		runes = runes[len(runes)-referenceSuffixLen:]
	}
	return strings.ToUpper(string(runes))
}

func serviceTypeText(serviceType string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(serviceType), "_", " "))
}

// Matcher recognises a ledger charge that duplicates a structured record.
type Matcher interface {
	Name() string
	Matches(tx models.Transaction, idx *SourceIndex) bool
}

// MatcherFunc adapts a function to the Matcher interface.
type MatcherFunc struct {
	Rule string
	Fn   func(tx models.Transaction, idx *SourceIndex) bool
}

func (m MatcherFunc) Name() string { return m.Rule }

func (m MatcherFunc) Matches(tx models.Transaction, idx *SourceIndex) bool { return m.Fn(tx, idx) }

// BackReferenceMatcher drops a charge that a guest service or food order points
// at through transactionId, or that itself names a present record as its source.
var BackReferenceMatcher Matcher = MatcherFunc{
	Rule: "back_reference",
	Fn: func(tx models.Transaction, idx *SourceIndex) bool {
		if tx.ID != "" {
			if _, ok := idx.linkedTxIDs[tx.ID]; ok {
				return true
			}
		}
		if tx.SourceID != "" {
			if _, ok := idx.sourceIDs[tx.SourceID]; ok {
				return true
			}
		}
		return false
	},
}

// ReferenceMatcher drops SVC-/ORD- references that embed a present record's key.
var ReferenceMatcher Matcher = MatcherFunc{
	Rule: "reference",
	Fn: func(tx models.Transaction, idx *SourceIndex) bool {
		switch {
		case strings.HasPrefix(tx.Reference, ServiceReferencePrefix):
			for _, suffix := range idx.serviceSuffixes {
				if strings.Contains(tx.Reference, suffix) {
					return true
				}
			}
		case strings.HasPrefix(tx.Reference, OrderReferencePrefix):
			for _, number := range idx.orderNumbers {
				if strings.Contains(tx.Reference, number) {
					return true
				}
			}
		}
		return false
	},
}

// LegacyAmountMatcher drops a system-generated "Service Charge:" line whose
// amount is within tolerance of some guest service total.
var LegacyAmountMatcher Matcher = MatcherFunc{
	Rule: "legacy_amount",
	Fn: func(tx models.Transaction, idx *SourceIndex) bool {
		if !strings.HasPrefix(tx.Description, serviceChargePrefix) {
			return false
		}
		amount := tx.Amount.Decimal()
		for _, total := range idx.serviceAmounts {
			if total.Sub(amount).Abs().LessThan(amountTolerance) {
				return true
			}
		}
		return false
	},
}

// LegacyDescriptionMatcher drops a non room-charge line whose description names
// a guest service type or reads as a service charge.
// Room charges are never matched here: minibar and similar lines share wording
// with guest services but are billed separately.
var LegacyDescriptionMatcher Matcher = MatcherFunc{
	Rule: "legacy_description",
	Fn: func(tx models.Transaction, idx *SourceIndex) bool {
		if tx.Category == models.CategoryRoomCharge || !idx.hasServices {
			return false
		}
		desc := strings.ToLower(tx.Description)
		if strings.Contains(desc, serviceChargePhrase) {
			return true
		}
		for _, text := range idx.serviceTypeTexts {
			if strings.Contains(desc, text) {
				return true
			}
		}
		return false
	},
}

// StrongMatchers rely on explicit correlation data.
func StrongMatchers() []Matcher {
	return []Matcher{BackReferenceMatcher, ReferenceMatcher}
}

// LegacyMatchers cover ledger data written before correlation ids existed.
func LegacyMatchers() []Matcher {
	return []Matcher{LegacyAmountMatcher, LegacyDescriptionMatcher}
}

// DroppedTransaction records which rule removed a ledger line.
type DroppedTransaction struct {
	Transaction models.Transaction `json:"transaction"`
	Rule        string             `json:"rule"`
}

// DedupResult is the outcome of one deduplication pass.
type DedupResult struct {
	Unique  []models.Transaction
	Dropped []DroppedTransaction
}

// Deduplicator removes ledger charges already counted as a food order or guest
// service. Matchers run in order and the first match drops the line.
type Deduplicator struct {
	matchers []Matcher
}

// NewDeduplicator builds the cascade; legacy adds the heuristic matchers after
// the strong ones.
func NewDeduplicator(legacy bool) *Deduplicator {
	matchers := StrongMatchers()
	if legacy {
		matchers = append(matchers, LegacyMatchers()...)
	}
	return &Deduplicator{matchers: matchers}
}

// NewDeduplicatorWithMatchers builds a cascade from explicit matchers.
func NewDeduplicatorWithMatchers(matchers ...Matcher) *Deduplicator {
	return &Deduplicator{matchers: matchers}
}

// Run filters transactions, preserving order. Inputs are not modified.
func (d *Deduplicator) Run(transactions []models.Transaction, foodOrders []models.FoodOrder, guestServices []models.GuestService) DedupResult {
	idx := NewSourceIndex(foodOrders, guestServices)
	res := DedupResult{Unique: make([]models.Transaction, 0, len(transactions))}

	for _, tx := range transactions {
		if !tx.IsCharge() {
			res.Unique = append(res.Unique, tx)
			continue
		}
		if rule, dropped := d.match(tx, idx); dropped {
			res.Dropped = append(res.Dropped, DroppedTransaction{Transaction: tx, Rule: rule})
			continue
		}
		res.Unique = append(res.Unique, tx)
	}
	return res
}

func (d *Deduplicator) match(tx models.Transaction, idx *SourceIndex) (string, bool) {
	for _, m := range d.matchers {
		if m.Matches(tx, idx) {
			return m.Name(), true
		}
	}
	return "", false
}

// Deduplicate runs the full cascade, legacy matchers included.
func Deduplicate(transactions []models.Transaction, foodOrders []models.FoodOrder, guestServices []models.GuestService) []models.Transaction {
	return NewDeduplicator(true).Run(transactions, foodOrders, guestServices).Unique
}
