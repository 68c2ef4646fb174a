package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel-backend/internal/apperrors"
	"travel-backend/internal/models"
	"travel-backend/internal/pricing"
	"travel-backend/internal/repositories"
)

// fakeTx satisfies pgx.Tx through the embedded interface; only the
// methods the service calls are overridden.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeBeginner struct {
	tx *fakeTx
}

func (b *fakeBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	b.tx = &fakeTx{}
	return b.tx, nil
}

func ownerKey(o models.SectorOwner) string {
	if o.QuoteID != nil {
		return fmt.Sprintf("q:%d", *o.QuoteID)
	}
	if o.BookingID != nil {
		return fmt.Sprintf("b:%d", *o.BookingID)
	}
	return "none"
}

func sameOwner(quoteID, bookingID *int, o models.SectorOwner) bool {
	if o.QuoteID != nil {
		return quoteID != nil && *quoteID == *o.QuoteID
	}
	if o.BookingID != nil {
		return bookingID != nil && *bookingID == *o.BookingID
	}
	return false
}

// fakeStore backs every store interface with in-memory maps. failOn
// injects an error when the named method runs; calls records the
// sequence of write methods for ordering assertions.
type fakeStore struct {
	nextID int

	transactions map[int]*models.Transaction
	enquiries    map[int]*models.Enquiry
	quotes       map[int]*models.Quote
	bookings     map[int]*models.Booking
	referrals    map[int]*models.Referral

	flights   []models.FlightSector
	hotels    []models.HotelSector
	transfers []models.TransferSector
	carHires  []models.CarHireSector
	tickets   []models.AttractionTicketSector
	lounges   []models.LoungePassSector
	parking   []models.AirportParkingSector

	passengerSets map[string][]models.Passenger
	cruiseSets    map[string]*models.CruiseDetail

	calls  []string
	failOn map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		transactions:  map[int]*models.Transaction{},
		enquiries:     map[int]*models.Enquiry{},
		quotes:        map[int]*models.Quote{},
		bookings:      map[int]*models.Booking{},
		referrals:     map[int]*models.Referral{},
		passengerSets: map[string][]models.Passenger{},
		cruiseSets:    map[string]*models.CruiseDetail{},
		failOn:        map[string]error{},
	}
}

func (f *fakeStore) id() int {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) call(name string) error {
	f.calls = append(f.calls, name)
	return f.failOn[name]
}

// --- TransactionStore ---

func (f *fakeStore) Insert(ctx context.Context, q repositories.DBTX, t *models.Transaction) error {
	if err := f.call("InsertTransaction"); err != nil {
		return err
	}
	t.ID = f.id()
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	f.transactions[t.ID] = &cp
	return nil
}

func (f *fakeStore) Get(ctx context.Context, q repositories.DBTX, id int) (*models.Transaction, error) {
	t, ok := f.transactions[id]
	if !ok {
		return nil, apperrors.NotFound("transaction %d not found", id)
	}
	cp := *t
	return &cp, nil
}

func (f *fakeStore) GetForUpdate(ctx context.Context, q repositories.DBTX, id int) (*models.Transaction, error) {
	return f.Get(ctx, q, id)
}

func (f *fakeStore) SetStatus(ctx context.Context, q repositories.DBTX, id int, status models.TransactionStatus, clientID, agentID *int) error {
	if err := f.call("SetStatus"); err != nil {
		return err
	}
	t, ok := f.transactions[id]
	if !ok {
		return apperrors.NotFound("transaction %d not found", id)
	}
	t.Status = status
	if clientID != nil {
		t.ClientID = *clientID
	}
	if agentID != nil {
		t.AgentID = *agentID
	}
	return nil
}

func (f *fakeStore) ListByStatus(ctx context.Context, status models.TransactionStatus, limit int) ([]*models.Transaction, error) {
	var out []*models.Transaction
	for _, t := range f.transactions {
		if t.Status == status {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

// --- EnquiryStore ---

func (f *fakeStore) InsertEnquiry(e *models.Enquiry) {
	e.ID = f.id()
	e.DateCreated = time.Now()
	cp := *e
	f.enquiries[e.ID] = &cp
}

func (f *fakeStore) enquiryInsert(ctx context.Context, e *models.Enquiry) error {
	if err := f.call("InsertEnquiry"); err != nil {
		return err
	}
	f.InsertEnquiry(e)
	return nil
}

func (f *fakeStore) InsertSelections(ctx context.Context, q repositories.DBTX, e *models.Enquiry) error {
	return f.call("InsertSelections")
}

func (f *fakeStore) GetByTransaction(ctx context.Context, q repositories.DBTX, transactionID int) (*models.Enquiry, error) {
	for _, e := range f.enquiries {
		if e.TransactionID == transactionID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("enquiry for transaction %d not found", transactionID)
}

func (f *fakeStore) UpdateStatus(ctx context.Context, q repositories.DBTX, id int, status string, bumpedCreated *time.Time) error {
	if err := f.call("UpdateEnquiryStatus"); err != nil {
		return err
	}
	e, ok := f.enquiries[id]
	if !ok {
		return apperrors.NotFound("enquiry %d not found", id)
	}
	e.Status = status
	if bumpedCreated != nil {
		e.DateCreated = *bumpedCreated
	}
	return nil
}

func (f *fakeStore) SetFutureDeal(ctx context.Context, q repositories.DBTX, id int, futureDate *time.Time) error {
	e, ok := f.enquiries[id]
	if !ok {
		return apperrors.NotFound("enquiry %d not found", id)
	}
	e.IsFutureDeal = true
	e.FutureDealDate = futureDate
	e.DateExpiry = nil
	return nil
}

func (f *fakeStore) UnsetFutureDeal(ctx context.Context, q repositories.DBTX, id int, newExpiry time.Time) error {
	e, ok := f.enquiries[id]
	if !ok {
		return apperrors.NotFound("enquiry %d not found", id)
	}
	e.IsFutureDeal = false
	e.FutureDealDate = nil
	e.DateExpiry = &newExpiry
	return nil
}

func (f *fakeStore) SoftDelete(ctx context.Context, q repositories.DBTX, id int) error {
	delete(f.enquiries, id)
	return nil
}

// enquiryStore adapts fakeStore to EnquiryStore where method names
// collide with the other interfaces.
type enquiryStore struct{ f *fakeStore }

func (s enquiryStore) Insert(ctx context.Context, q repositories.DBTX, e *models.Enquiry) error {
	return s.f.enquiryInsert(ctx, e)
}
func (s enquiryStore) InsertSelections(ctx context.Context, q repositories.DBTX, e *models.Enquiry) error {
	return s.f.InsertSelections(ctx, q, e)
}
func (s enquiryStore) Get(ctx context.Context, q repositories.DBTX, id int) (*models.Enquiry, error) {
	e, ok := s.f.enquiries[id]
	if !ok {
		return nil, apperrors.NotFound("enquiry %d not found", id)
	}
	cp := *e
	return &cp, nil
}
func (s enquiryStore) GetByTransaction(ctx context.Context, q repositories.DBTX, transactionID int) (*models.Enquiry, error) {
	return s.f.GetByTransaction(ctx, q, transactionID)
}
func (s enquiryStore) UpdateStatus(ctx context.Context, q repositories.DBTX, id int, status string, bumped *time.Time) error {
	return s.f.UpdateStatus(ctx, q, id, status, bumped)
}
func (s enquiryStore) SetFutureDeal(ctx context.Context, q repositories.DBTX, id int, futureDate *time.Time) error {
	return s.f.SetFutureDeal(ctx, q, id, futureDate)
}
func (s enquiryStore) UnsetFutureDeal(ctx context.Context, q repositories.DBTX, id int, newExpiry time.Time) error {
	return s.f.UnsetFutureDeal(ctx, q, id, newExpiry)
}
func (s enquiryStore) SoftDelete(ctx context.Context, q repositories.DBTX, id int) error {
	return s.f.SoftDelete(ctx, q, id)
}

// quoteStore adapts fakeStore to QuoteStore.
type quoteStore struct{ f *fakeStore }

func (s quoteStore) Insert(ctx context.Context, q repositories.DBTX, quote *models.Quote) error {
	if err := s.f.call("InsertQuote"); err != nil {
		return err
	}
	quote.ID = s.f.id()
	quote.DateCreated = time.Now()
	cp := *quote
	s.f.quotes[quote.ID] = &cp
	return nil
}
func (s quoteStore) Update(ctx context.Context, q repositories.DBTX, quote *models.Quote) error {
	if err := s.f.call("UpdateQuote"); err != nil {
		return err
	}
	if _, ok := s.f.quotes[quote.ID]; !ok {
		return apperrors.NotFound("quote %d not found", quote.ID)
	}
	cp := *quote
	s.f.quotes[quote.ID] = &cp
	return nil
}
func (s quoteStore) Get(ctx context.Context, q repositories.DBTX, id int) (*models.Quote, error) {
	quote, ok := s.f.quotes[id]
	if !ok {
		return nil, apperrors.NotFound("quote %d not found", id)
	}
	cp := *quote
	return &cp, nil
}
func (s quoteStore) ListByTransaction(ctx context.Context, q repositories.DBTX, transactionID int) ([]*models.Quote, error) {
	var out []*models.Quote
	for _, quote := range s.f.quotes {
		if quote.TransactionID == transactionID {
			cp := *quote
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (s quoteStore) HasQuotes(ctx context.Context, q repositories.DBTX, transactionID int) (bool, error) {
	for _, quote := range s.f.quotes {
		if quote.TransactionID == transactionID {
			return true, nil
		}
	}
	return false, nil
}
func (s quoteStore) SetFutureDeal(ctx context.Context, q repositories.DBTX, id int, futureDate *time.Time) error {
	quote, ok := s.f.quotes[id]
	if !ok {
		return apperrors.NotFound("quote %d not found", id)
	}
	quote.IsFutureDeal = true
	quote.FutureDealDate = futureDate
	quote.DateExpiry = nil
	return nil
}
func (s quoteStore) UnsetFutureDeal(ctx context.Context, q repositories.DBTX, id int, newExpiry time.Time) error {
	quote, ok := s.f.quotes[id]
	if !ok {
		return apperrors.NotFound("quote %d not found", id)
	}
	quote.IsFutureDeal = false
	quote.FutureDealDate = nil
	quote.DateExpiry = &newExpiry
	return nil
}
func (s quoteStore) SoftDelete(ctx context.Context, q repositories.DBTX, id int) error {
	if _, ok := s.f.quotes[id]; !ok {
		return apperrors.NotFound("quote %d not found", id)
	}
	delete(s.f.quotes, id)
	return nil
}

// bookingStore adapts fakeStore to BookingStore.
type bookingStore struct{ f *fakeStore }

func (s bookingStore) Insert(ctx context.Context, q repositories.DBTX, b *models.Booking) error {
	if err := s.f.call("InsertBooking"); err != nil {
		return err
	}
	b.ID = s.f.id()
	b.DateCreated = time.Now()
	cp := *b
	s.f.bookings[b.ID] = &cp
	return nil
}
func (s bookingStore) Update(ctx context.Context, q repositories.DBTX, b *models.Booking) error {
	if _, ok := s.f.bookings[b.ID]; !ok {
		return apperrors.NotFound("booking %d not found", b.ID)
	}
	cp := *b
	s.f.bookings[b.ID] = &cp
	return nil
}
func (s bookingStore) Get(ctx context.Context, q repositories.DBTX, id int) (*models.Booking, error) {
	b, ok := s.f.bookings[id]
	if !ok {
		return nil, apperrors.NotFound("booking %d not found", id)
	}
	cp := *b
	return &cp, nil
}
func (s bookingStore) GetByTransaction(ctx context.Context, q repositories.DBTX, transactionID int) (*models.Booking, error) {
	for _, b := range s.f.bookings {
		if b.TransactionID == transactionID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, apperrors.NotFound("booking for transaction %d not found", transactionID)
}
func (s bookingStore) SoftDelete(ctx context.Context, q repositories.DBTX, id int) error {
	if _, ok := s.f.bookings[id]; !ok {
		return apperrors.NotFound("booking %d not found", id)
	}
	delete(s.f.bookings, id)
	return nil
}

// sectorStore adapts fakeStore to SectorStore. Inserts mimic the
// persistence-layer operator attribution so service-level tests can
// observe it.
type sectorStore struct{ f *fakeStore }

func (s sectorStore) ListFlights(ctx context.Context, q repositories.DBTX, o models.SectorOwner) ([]models.FlightSector, error) {
	var out []models.FlightSector
	for _, x := range s.f.flights {
		if sameOwner(x.QuoteID, x.BookingID, o) {
			out = append(out, x)
		}
	}
	return out, nil
}
func (s sectorStore) InsertFlights(ctx context.Context, q repositories.DBTX, o models.SectorOwner, mainOp *int, items []models.FlightSector) error {
	if err := s.f.call("InsertFlights"); err != nil {
		return err
	}
	for _, x := range items {
		x.ID = s.f.id()
		x.QuoteID, x.BookingID = o.QuoteID, o.BookingID
		x.TourOperatorID = pricing.AttributedOperator(x.IsIncludedInPackage, x.TourOperatorID, mainOp)
		s.f.flights = append(s.f.flights, x)
	}
	return nil
}
func (s sectorStore) UpdateFlight(ctx context.Context, q repositories.DBTX, o models.SectorOwner, mainOp *int, item models.FlightSector) error {
	if err := s.f.call("UpdateFlight"); err != nil {
		return err
	}
	for i, x := range s.f.flights {
		if x.ID == item.ID && sameOwner(x.QuoteID, x.BookingID, o) {
			item.QuoteID, item.BookingID = x.QuoteID, x.BookingID
			item.TourOperatorID = pricing.AttributedOperator(item.IsIncludedInPackage, item.TourOperatorID, mainOp)
			s.f.flights[i] = item
			return nil
		}
	}
	return apperrors.Conflict("flight sector %d no longer exists", item.ID)
}
func (s sectorStore) DeleteFlights(ctx context.Context, q repositories.DBTX, o models.SectorOwner, ids []int) error {
	if err := s.f.call("DeleteFlights"); err != nil {
		return err
	}
	for _, id := range ids {
		for i, x := range s.f.flights {
			if x.ID == id && sameOwner(x.QuoteID, x.BookingID, o) {
				s.f.flights = append(s.f.flights[:i], s.f.flights[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (s sectorStore) ListHotels(ctx context.Context, q repositories.DBTX, o models.SectorOwner) ([]models.HotelSector, error) {
	var out []models.HotelSector
	for _, x := range s.f.hotels {
		if sameOwner(x.QuoteID, x.BookingID, o) {
			out = append(out, x)
		}
	}
	return out, nil
}
func (s sectorStore) InsertHotels(ctx context.Context, q repositories.DBTX, o models.SectorOwner, mainOp *int, items []models.HotelSector) error {
	if err := s.f.call("InsertHotels"); err != nil {
		return err
	}
	for _, x := range items {
		x.ID = s.f.id()
		x.QuoteID, x.BookingID = o.QuoteID, o.BookingID
		x.TourOperatorID = pricing.AttributedOperator(x.IsIncludedInPackage, x.TourOperatorID, mainOp)
		s.f.hotels = append(s.f.hotels, x)
	}
	return nil
}
func (s sectorStore) UpdateHotel(ctx context.Context, q repositories.DBTX, o models.SectorOwner, mainOp *int, item models.HotelSector) error {
	if err := s.f.call("UpdateHotel"); err != nil {
		return err
	}
	for i, x := range s.f.hotels {
		if x.ID == item.ID && sameOwner(x.QuoteID, x.BookingID, o) {
			item.QuoteID, item.BookingID = x.QuoteID, x.BookingID
			item.TourOperatorID = pricing.AttributedOperator(item.IsIncludedInPackage, item.TourOperatorID, mainOp)
			s.f.hotels[i] = item
			return nil
		}
	}
	return apperrors.Conflict("hotel sector %d no longer exists", item.ID)
}
func (s sectorStore) DeleteHotels(ctx context.Context, q repositories.DBTX, o models.SectorOwner, ids []int) error {
	if err := s.f.call("DeleteHotels"); err != nil {
		return err
	}
	for _, id := range ids {
		for i, x := range s.f.hotels {
			if x.ID == id && sameOwner(x.QuoteID, x.BookingID, o) {
				s.f.hotels = append(s.f.hotels[:i], s.f.hotels[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (s sectorStore) ListTransfers(ctx context.Context, q repositories.DBTX, o models.SectorOwner) ([]models.TransferSector, error) {
	var out []models.TransferSector
	for _, x := range s.f.transfers {
		if sameOwner(x.QuoteID, x.BookingID, o) {
			out = append(out, x)
		}
	}
	return out, nil
}
func (s sectorStore) InsertTransfers(ctx context.Context, q repositories.DBTX, o models.SectorOwner, mainOp *int, items []models.TransferSector) error {
	if err := s.f.call("InsertTransfers"); err != nil {
		return err
	}
	for _, x := range items {
		x.ID = s.f.id()
		x.QuoteID, x.BookingID = o.QuoteID, o.BookingID
		x.TourOperatorID = pricing.AttributedOperator(x.IsIncludedInPackage, x.TourOperatorID, mainOp)
		s.f.transfers = append(s.f.transfers, x)
	}
	return nil
}
func (s sectorStore) UpdateTransfer(ctx context.Context, q repositories.DBTX, o models.SectorOwner, mainOp *int, item models.TransferSector) error {
	for i, x := range s.f.transfers {
		if x.ID == item.ID && sameOwner(x.QuoteID, x.BookingID, o) {
			item.QuoteID, item.BookingID = x.QuoteID, x.BookingID
			s.f.transfers[i] = item
			return nil
		}
	}
	return apperrors.Conflict("transfer sector %d no longer exists", item.ID)
}
func (s sectorStore) DeleteTransfers(ctx context.Context, q repositories.DBTX, o models.SectorOwner, ids []int) error {
	for _, id := range ids {
		for i, x := range s.f.transfers {
			if x.ID == id && sameOwner(x.QuoteID, x.BookingID, o) {
				s.f.transfers = append(s.f.transfers[:i], s.f.transfers[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (s sectorStore) ListCarHires(ctx context.Context, q repositories.DBTX, o models.SectorOwner) ([]models.CarHireSector, error) {
	var out []models.CarHireSector
	for _, x := range s.f.carHires {
		if sameOwner(x.QuoteID, x.BookingID, o) {
			out = append(out, x)
		}
	}
	return out, nil
}
func (s sectorStore) InsertCarHires(ctx context.Context, q repositories.DBTX, o models.SectorOwner, mainOp *int, items []models.CarHireSector) error {
	for _, x := range items {
		x.ID = s.f.id()
		x.QuoteID, x.BookingID = o.QuoteID, o.BookingID
		x.TourOperatorID = pricing.AttributedOperator(x.IsIncludedInPackage, x.TourOperatorID, mainOp)
		s.f.carHires = append(s.f.carHires, x)
	}
	return nil
}
func (s sectorStore) UpdateCarHire(ctx context.Context, q repositories.DBTX, o models.SectorOwner, mainOp *int, item models.CarHireSector) error {
	for i, x := range s.f.carHires {
		if x.ID == item.ID && sameOwner(x.QuoteID, x.BookingID, o) {
			item.QuoteID, item.BookingID = x.QuoteID, x.BookingID
			s.f.carHires[i] = item
			return nil
		}
	}
	return apperrors.Conflict("car hire sector %d no longer exists", item.ID)
}
func (s sectorStore) DeleteCarHires(ctx context.Context, q repositories.DBTX, o models.SectorOwner, ids []int) error {
	for _, id := range ids {
		for i, x := range s.f.carHires {
			if x.ID == id && sameOwner(x.QuoteID, x.BookingID, o) {
				s.f.carHires = append(s.f.carHires[:i], s.f.carHires[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (s sectorStore) ListTickets(ctx context.Context, q repositories.DBTX, o models.SectorOwner) ([]models.AttractionTicketSector, error) {
	var out []models.AttractionTicketSector
	for _, x := range s.f.tickets {
		if sameOwner(x.QuoteID, x.BookingID, o) {
			out = append(out, x)
		}
	}
	return out, nil
}
func (s sectorStore) InsertTickets(ctx context.Context, q repositories.DBTX, o models.SectorOwner, mainOp *int, items []models.AttractionTicketSector) error {
	for _, x := range items {
		x.ID = s.f.id()
		x.QuoteID, x.BookingID = o.QuoteID, o.BookingID
		x.TourOperatorID = pricing.AttributedOperator(x.IsIncludedInPackage, x.TourOperatorID, mainOp)
		s.f.tickets = append(s.f.tickets, x)
	}
	return nil
}
func (s sectorStore) UpdateTicket(ctx context.Context, q repositories.DBTX, o models.SectorOwner, mainOp *int, item models.AttractionTicketSector) error {
	for i, x := range s.f.tickets {
		if x.ID == item.ID && sameOwner(x.QuoteID, x.BookingID, o) {
			item.QuoteID, item.BookingID = x.QuoteID, x.BookingID
			s.f.tickets[i] = item
			return nil
		}
	}
	return apperrors.Conflict("attraction ticket sector %d no longer exists", item.ID)
}
func (s sectorStore) DeleteTickets(ctx context.Context, q repositories.DBTX, o models.SectorOwner, ids []int) error {
	for _, id := range ids {
		for i, x := range s.f.tickets {
			if x.ID == id && sameOwner(x.QuoteID, x.BookingID, o) {
				s.f.tickets = append(s.f.tickets[:i], s.f.tickets[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (s sectorStore) ListLoungePasses(ctx context.Context, q repositories.DBTX, o models.SectorOwner) ([]models.LoungePassSector, error) {
	var out []models.LoungePassSector
	for _, x := range s.f.lounges {
		if sameOwner(x.QuoteID, x.BookingID, o) {
			out = append(out, x)
		}
	}
	return out, nil
}
func (s sectorStore) InsertLoungePasses(ctx context.Context, q repositories.DBTX, o models.SectorOwner, mainOp *int, items []models.LoungePassSector) error {
	for _, x := range items {
		x.ID = s.f.id()
		x.QuoteID, x.BookingID = o.QuoteID, o.BookingID
		x.TourOperatorID = pricing.AttributedOperator(x.IsIncludedInPackage, x.TourOperatorID, mainOp)
		s.f.lounges = append(s.f.lounges, x)
	}
	return nil
}
func (s sectorStore) UpdateLoungePass(ctx context.Context, q repositories.DBTX, o models.SectorOwner, mainOp *int, item models.LoungePassSector) error {
	for i, x := range s.f.lounges {
		if x.ID == item.ID && sameOwner(x.QuoteID, x.BookingID, o) {
			item.QuoteID, item.BookingID = x.QuoteID, x.BookingID
			s.f.lounges[i] = item
			return nil
		}
	}
	return apperrors.Conflict("lounge pass sector %d no longer exists", item.ID)
}
func (s sectorStore) DeleteLoungePasses(ctx context.Context, q repositories.DBTX, o models.SectorOwner, ids []int) error {
	for _, id := range ids {
		for i, x := range s.f.lounges {
			if x.ID == id && sameOwner(x.QuoteID, x.BookingID, o) {
				s.f.lounges = append(s.f.lounges[:i], s.f.lounges[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (s sectorStore) ListParking(ctx context.Context, q repositories.DBTX, o models.SectorOwner) ([]models.AirportParkingSector, error) {
	var out []models.AirportParkingSector
	for _, x := range s.f.parking {
		if sameOwner(x.QuoteID, x.BookingID, o) {
			out = append(out, x)
		}
	}
	return out, nil
}
func (s sectorStore) InsertParking(ctx context.Context, q repositories.DBTX, o models.SectorOwner, mainOp *int, items []models.AirportParkingSector) error {
	for _, x := range items {
		x.ID = s.f.id()
		x.QuoteID, x.BookingID = o.QuoteID, o.BookingID
		x.TourOperatorID = pricing.AttributedOperator(x.IsIncludedInPackage, x.TourOperatorID, mainOp)
		s.f.parking = append(s.f.parking, x)
	}
	return nil
}
func (s sectorStore) UpdateParking(ctx context.Context, q repositories.DBTX, o models.SectorOwner, mainOp *int, item models.AirportParkingSector) error {
	for i, x := range s.f.parking {
		if x.ID == item.ID && sameOwner(x.QuoteID, x.BookingID, o) {
			item.QuoteID, item.BookingID = x.QuoteID, x.BookingID
			s.f.parking[i] = item
			return nil
		}
	}
	return apperrors.Conflict("airport parking sector %d no longer exists", item.ID)
}
func (s sectorStore) DeleteParking(ctx context.Context, q repositories.DBTX, o models.SectorOwner, ids []int) error {
	for _, id := range ids {
		for i, x := range s.f.parking {
			if x.ID == id && sameOwner(x.QuoteID, x.BookingID, o) {
				s.f.parking = append(s.f.parking[:i], s.f.parking[i+1:]...)
				break
			}
		}
	}
	return nil
}

// cruiseStore adapts fakeStore to CruiseStore.
type cruiseStore struct{ f *fakeStore }

func (s cruiseStore) UpsertForOwner(ctx context.Context, q repositories.DBTX, o models.SectorOwner, c *models.Cruise) error {
	if err := s.f.call("UpsertCruise"); err != nil {
		return err
	}
	key := ownerKey(o)
	existing, ok := s.f.cruiseSets[key]
	if ok {
		c.ID = existing.Cruise.ID
	} else {
		c.ID = s.f.id()
	}
	c.QuoteID, c.BookingID = o.QuoteID, o.BookingID
	s.f.cruiseSets[key] = &models.CruiseDetail{Cruise: *c}
	return nil
}
func (s cruiseStore) ReplaceItinerary(ctx context.Context, q repositories.DBTX, cruiseID int, days []models.CruiseItineraryDay) error {
	for key, d := range s.f.cruiseSets {
		if d.Cruise.ID == cruiseID {
			d.Itinerary = days
			s.f.cruiseSets[key] = d
		}
	}
	return nil
}
func (s cruiseStore) ReplaceExtras(ctx context.Context, q repositories.DBTX, cruiseID int, extras []models.CruiseExtra) error {
	for key, d := range s.f.cruiseSets {
		if d.Cruise.ID == cruiseID {
			d.Extras = extras
			s.f.cruiseSets[key] = d
		}
	}
	return nil
}
func (s cruiseStore) GetForOwner(ctx context.Context, q repositories.DBTX, o models.SectorOwner) (*models.CruiseDetail, error) {
	d, ok := s.f.cruiseSets[ownerKey(o)]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}
func (s cruiseStore) DeleteForOwner(ctx context.Context, q repositories.DBTX, o models.SectorOwner) error {
	delete(s.f.cruiseSets, ownerKey(o))
	return nil
}

// passengerStore adapts fakeStore to PassengerStore.
type passengerStore struct{ f *fakeStore }

func (s passengerStore) ReplaceForOwner(ctx context.Context, q repositories.DBTX, o models.SectorOwner, passengers []models.Passenger) error {
	if err := s.f.call("ReplacePassengers"); err != nil {
		return err
	}
	for i := range passengers {
		passengers[i].ID = s.f.id()
		passengers[i].QuoteID, passengers[i].BookingID = o.QuoteID, o.BookingID
	}
	s.f.passengerSets[ownerKey(o)] = passengers
	return nil
}
func (s passengerStore) ListForOwner(ctx context.Context, q repositories.DBTX, o models.SectorOwner) ([]models.Passenger, error) {
	return s.f.passengerSets[ownerKey(o)], nil
}

// referralStore adapts fakeStore to ReferralStore.
type referralStore struct{ f *fakeStore }

func (s referralStore) Upsert(ctx context.Context, q repositories.DBTX, transactionID int, in models.ReferralInput) (*models.Referral, error) {
	if err := s.f.call("UpsertReferral"); err != nil {
		return nil, err
	}
	ref := &models.Referral{
		ID:                  s.f.id(),
		TransactionID:       transactionID,
		ReferrerID:          in.ReferrerID,
		PotentialCommission: in.PotentialCommission,
	}
	s.f.referrals[transactionID] = ref
	return ref, nil
}
func (s referralStore) GetByTransaction(ctx context.Context, q repositories.DBTX, transactionID int) (*models.Referral, error) {
	ref, ok := s.f.referrals[transactionID]
	if !ok {
		return nil, nil
	}
	cp := *ref
	return &cp, nil
}

func newTestService(f *fakeStore, b *fakeBeginner, now func() time.Time) *PipelineService {
	return NewPipelineService(PipelineDeps{
		Begin:        b,
		Transactions: f,
		Enquiries:    enquiryStore{f},
		Quotes:       quoteStore{f},
		Bookings:     bookingStore{f},
		Sectors:      sectorStore{f},
		Cruises:      cruiseStore{f},
		Passengers:   passengerStore{f},
		Referrals:    referralStore{f},
		Now:          now,
	})
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func intPtr(v int) *int { return &v }

func TestCreateEnquiryDefaultsExpiry(t *testing.T) {
	f := newFakeStore()
	b := &fakeBeginner{}
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(f, b, func() time.Time { return now })

	txn, e, err := svc.CreateEnquiry(context.Background(), &models.CreateEnquiryRequest{
		ClientID:       1,
		AgentID:        2,
		LeadSource:     "phone",
		Adults:         2,
		Children:       1,
		DestinationIDs: []int{10, 11},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnEnquiry, txn.Status)
	assert.Equal(t, models.EnquiryStatusNew, e.Status)
	require.NotNil(t, e.DateExpiry)
	assert.Equal(t, now.Add(24*time.Hour), *e.DateExpiry)
	assert.True(t, b.tx.committed)
	assert.Contains(t, f.calls, "InsertSelections")
}

func TestCreateEnquiryFutureDealSkipsExpiry(t *testing.T) {
	f := newFakeStore()
	b := &fakeBeginner{}
	svc := newTestService(f, b, time.Now)

	future := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	_, e, err := svc.CreateEnquiry(context.Background(), &models.CreateEnquiryRequest{
		ClientID:       1,
		AgentID:        2,
		LeadSource:     "web",
		IsFutureDeal:   true,
		FutureDealDate: &future,
	})
	require.NoError(t, err)
	assert.Nil(t, e.DateExpiry)
	require.NotNil(t, e.FutureDealDate)
	assert.Equal(t, future, *e.FutureDealDate)
}

func TestCreateEnquiryValidation(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeBeginner{}, time.Now)

	_, _, err := svc.CreateEnquiry(context.Background(), &models.CreateEnquiryRequest{AgentID: 1, LeadSource: "x"})
	assert.True(t, apperrors.IsValidation(err))

	_, _, err = svc.CreateEnquiry(context.Background(), &models.CreateEnquiryRequest{ClientID: 1, AgentID: 1})
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateQuoteOpensTransaction(t *testing.T) {
	f := newFakeStore()
	b := &fakeBeginner{}
	svc := newTestService(f, b, time.Now)

	d, err := svc.CreateQuote(context.Background(), &models.SaveQuoteRequest{
		ClientID:   1,
		AgentID:    2,
		LeadSource: "walk_in",
		HolidayDetails: models.HolidayDetails{
			HolidayType: models.HolidayTypePackage,
			SalesPrice:  dec("1200.00"),
			Flights: []models.FlightSector{
				{SectorBase: models.SectorBase{Cost: dec("300.00"), Commission: dec("30.00")}, DepartingAirportID: 1, ArrivalAirportID: 2},
			},
			Passengers: []models.Passenger{{FirstName: "Ada", LastName: "Lovelace", Type: models.PassengerTypeAdult}},
		},
	})
	require.NoError(t, err)
	assert.True(t, d.Quote.IsPrimary)
	assert.Equal(t, models.StatusOnQuote, d.Transaction.Status)
	require.Len(t, d.Flights, 1)
	assert.NotZero(t, d.Flights[0].ID)
	require.Len(t, d.Passengers, 1)
	assert.True(t, b.tx.committed)
}

func TestSecondQuoteIsNotPrimary(t *testing.T) {
	f := newFakeStore()
	b := &fakeBeginner{}
	svc := newTestService(f, b, time.Now)

	first, err := svc.CreateQuote(context.Background(), &models.SaveQuoteRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
		HolidayDetails: models.HolidayDetails{HolidayType: models.HolidayTypeTailor},
	})
	require.NoError(t, err)

	second, err := svc.CreateQuote(context.Background(), &models.SaveQuoteRequest{
		TransactionID: &first.Transaction.ID,
		ClientID:      1, AgentID: 2, LeadSource: "phone",
		HolidayDetails: models.HolidayDetails{HolidayType: models.HolidayTypeTailor},
	})
	require.NoError(t, err)
	assert.True(t, first.Quote.IsPrimary)
	assert.False(t, second.Quote.IsPrimary)
}

func TestCreateQuoteOnBookedTransactionRejected(t *testing.T) {
	f := newFakeStore()
	b := &fakeBeginner{}
	svc := newTestService(f, b, time.Now)

	txn := &models.Transaction{Status: models.StatusOnBooking, ClientID: 1, AgentID: 2, LeadSource: "phone"}
	require.NoError(t, f.Insert(context.Background(), nil, txn))

	_, err := svc.CreateQuote(context.Background(), &models.SaveQuoteRequest{
		TransactionID: &txn.ID,
		ClientID:      1, AgentID: 2, LeadSource: "phone",
		HolidayDetails: models.HolidayDetails{HolidayType: models.HolidayTypePackage},
	})
	assert.True(t, apperrors.IsPrecondition(err))
	assert.False(t, b.tx.committed)
}

func TestQuoteOnEnquiryMarksEnquiryQuoted(t *testing.T) {
	f := newFakeStore()
	b := &fakeBeginner{}
	svc := newTestService(f, b, time.Now)

	txn, e, err := svc.CreateEnquiry(context.Background(), &models.CreateEnquiryRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
	})
	require.NoError(t, err)

	_, err = svc.CreateQuote(context.Background(), &models.SaveQuoteRequest{
		TransactionID: &txn.ID,
		ClientID:      1, AgentID: 2, LeadSource: "phone",
		HolidayDetails: models.HolidayDetails{HolidayType: models.HolidayTypePackage},
	})
	require.NoError(t, err)

	assert.Equal(t, models.EnquiryStatusQuoted, f.enquiries[e.ID].Status)
	assert.Equal(t, models.StatusOnQuote, f.transactions[txn.ID].Status)
}

func TestUpdateQuoteReconcilesSectors(t *testing.T) {
	f := newFakeStore()
	b := &fakeBeginner{}
	svc := newTestService(f, b, time.Now)

	d, err := svc.CreateQuote(context.Background(), &models.SaveQuoteRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
		HolidayDetails: models.HolidayDetails{
			HolidayType: models.HolidayTypeTailor,
			Flights: []models.FlightSector{
				{SectorBase: models.SectorBase{Cost: dec("100.00")}, DepartingAirportID: 1, ArrivalAirportID: 2},
				{SectorBase: models.SectorBase{Cost: dec("200.00")}, DepartingAirportID: 2, ArrivalAirportID: 1},
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, d.Flights, 2)
	keep, drop := d.Flights[0], d.Flights[1]

	f.calls = nil
	keep.Cost = dec("150.00")
	updated, err := svc.UpdateQuote(context.Background(), d.Quote.ID, &models.SaveQuoteRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
		HolidayDetails: models.HolidayDetails{
			HolidayType: models.HolidayTypeTailor,
			Flights: []models.FlightSector{
				keep,
				{SectorBase: models.SectorBase{Cost: dec("50.00")}, DepartingAirportID: 3, ArrivalAirportID: 4},
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Flights, 2)

	ids := map[int]bool{}
	for _, fl := range updated.Flights {
		ids[fl.ID] = true
	}
	assert.True(t, ids[keep.ID], "identified row survives with its id")
	assert.False(t, ids[drop.ID], "omitted row is deleted")

	// Deletes run before inserts, inserts before updates.
	idx := func(name string) int {
		for i, c := range f.calls {
			if c == name {
				return i
			}
		}
		return -1
	}
	require.GreaterOrEqual(t, idx("DeleteFlights"), 0)
	require.GreaterOrEqual(t, idx("InsertFlights"), 0)
	require.GreaterOrEqual(t, idx("UpdateFlight"), 0)
	assert.Less(t, idx("DeleteFlights"), idx("InsertFlights"))
	assert.Less(t, idx("InsertFlights"), idx("UpdateFlight"))
}

func TestUpdateQuoteRollsBackOnSectorFailure(t *testing.T) {
	f := newFakeStore()
	b := &fakeBeginner{}
	svc := newTestService(f, b, time.Now)

	d, err := svc.CreateQuote(context.Background(), &models.SaveQuoteRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
		HolidayDetails: models.HolidayDetails{HolidayType: models.HolidayTypeTailor},
	})
	require.NoError(t, err)

	f.failOn["InsertHotels"] = errors.New("constraint violation")
	_, err = svc.UpdateQuote(context.Background(), d.Quote.ID, &models.SaveQuoteRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
		HolidayDetails: models.HolidayDetails{
			HolidayType: models.HolidayTypeTailor,
			Hotels:      []models.HotelSector{{Name: "Grand"}},
		},
	})
	require.Error(t, err)
	assert.False(t, b.tx.committed)
	assert.True(t, b.tx.rolledBack)
}

func TestUpdateQuoteConflictOnVanishedSector(t *testing.T) {
	f := newFakeStore()
	b := &fakeBeginner{}
	svc := newTestService(f, b, time.Now)

	d, err := svc.CreateQuote(context.Background(), &models.SaveQuoteRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
		HolidayDetails: models.HolidayDetails{
			HolidayType: models.HolidayTypeTailor,
			Flights: []models.FlightSector{
				{SectorBase: models.SectorBase{Cost: dec("100.00")}, DepartingAirportID: 1, ArrivalAirportID: 2},
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, d.Flights, 1)

	// The update target disappears between the reconciler's read and
	// its write, as when another agent deletes the row concurrently.
	f.failOn["UpdateFlight"] = apperrors.Conflict("flight sector %d no longer exists", d.Flights[0].ID)

	target := d.Flights[0]
	target.Cost = dec("175.00")
	_, err = svc.UpdateQuote(context.Background(), d.Quote.ID, &models.SaveQuoteRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
		HolidayDetails: models.HolidayDetails{
			HolidayType: models.HolidayTypeTailor,
			Flights:     []models.FlightSector{target},
		},
	})
	assert.True(t, apperrors.IsConflict(err), "got %v", err)
	assert.False(t, b.tx.committed)
	assert.True(t, b.tx.rolledBack)
	// The stored row is untouched.
	require.Len(t, f.flights, 1)
	assert.True(t, f.flights[0].Cost.Equal(dec("100.00")))
}

func TestPackageOperatorAttribution(t *testing.T) {
	f := newFakeStore()
	b := &fakeBeginner{}
	svc := newTestService(f, b, time.Now)

	d, err := svc.CreateQuote(context.Background(), &models.SaveQuoteRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
		HolidayDetails: models.HolidayDetails{
			HolidayType:        models.HolidayTypePackage,
			MainTourOperatorID: intPtr(7),
			Flights: []models.FlightSector{
				{SectorBase: models.SectorBase{TourOperatorID: intPtr(99), IsIncludedInPackage: true}, DepartingAirportID: 1, ArrivalAirportID: 2},
				{SectorBase: models.SectorBase{TourOperatorID: intPtr(42)}, DepartingAirportID: 2, ArrivalAirportID: 1},
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, d.Flights, 2)

	byDeparture := map[int]models.FlightSector{}
	for _, fl := range d.Flights {
		byDeparture[fl.DepartingAirportID] = fl
	}
	require.NotNil(t, byDeparture[1].TourOperatorID)
	assert.Equal(t, 7, *byDeparture[1].TourOperatorID, "included row forced onto main operator")
	require.NotNil(t, byDeparture[2].TourOperatorID)
	assert.Equal(t, 42, *byDeparture[2].TourOperatorID, "standalone row keeps its operator")
}

func TestConvertQuoteToBooking(t *testing.T) {
	f := newFakeStore()
	b := &fakeBeginner{}
	svc := newTestService(f, b, time.Now)

	quote, err := svc.CreateQuote(context.Background(), &models.SaveQuoteRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
		HolidayDetails: models.HolidayDetails{HolidayType: models.HolidayTypePackage},
	})
	require.NoError(t, err)

	ref := "BK-1001"
	d, err := svc.ConvertQuoteToBooking(context.Background(), quote.Transaction.ID, &models.SaveBookingRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
		BookingReference: &ref,
		HolidayDetails: models.HolidayDetails{
			HolidayType: models.HolidayTypePackage,
			Flights: []models.FlightSector{
				{SectorBase: models.SectorBase{Cost: dec("500.00")}, DepartingAirportID: 1, ArrivalAirportID: 2},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusOnBooking, d.Transaction.Status)
	require.NotNil(t, d.Booking.BookingReference)
	assert.Equal(t, "BK-1001", *d.Booking.BookingReference)
	require.Len(t, d.Flights, 1)
	require.NotNil(t, d.Flights[0].BookingID)
	assert.Equal(t, d.Booking.ID, *d.Flights[0].BookingID)
	assert.Nil(t, d.Flights[0].QuoteID)
}

func TestConvertRequiresOnQuotePhase(t *testing.T) {
	f := newFakeStore()
	b := &fakeBeginner{}
	svc := newTestService(f, b, time.Now)

	txn, _, err := svc.CreateEnquiry(context.Background(), &models.CreateEnquiryRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
	})
	require.NoError(t, err)

	_, err = svc.ConvertQuoteToBooking(context.Background(), txn.ID, &models.SaveBookingRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
		HolidayDetails: models.HolidayDetails{HolidayType: models.HolidayTypePackage},
	})
	assert.True(t, apperrors.IsPrecondition(err))
	assert.Equal(t, models.StatusOnEnquiry, f.transactions[txn.ID].Status)
}

func TestConvertAtomicity(t *testing.T) {
	f := newFakeStore()
	b := &fakeBeginner{}
	svc := newTestService(f, b, time.Now)

	quote, err := svc.CreateQuote(context.Background(), &models.SaveQuoteRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
		HolidayDetails: models.HolidayDetails{HolidayType: models.HolidayTypePackage},
	})
	require.NoError(t, err)

	f.failOn["InsertFlights"] = errors.New("fk violation")
	_, err = svc.ConvertQuoteToBooking(context.Background(), quote.Transaction.ID, &models.SaveBookingRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
		HolidayDetails: models.HolidayDetails{
			HolidayType: models.HolidayTypePackage,
			Flights: []models.FlightSector{
				{DepartingAirportID: 1, ArrivalAirportID: 2},
			},
		},
	})
	require.Error(t, err)
	assert.False(t, b.tx.committed)
	assert.True(t, b.tx.rolledBack)
	// The phase never advanced.
	assert.Equal(t, models.StatusOnQuote, f.transactions[quote.Transaction.ID].Status)
}

func TestCruiseQuoteCarriesCruiseRecord(t *testing.T) {
	f := newFakeStore()
	b := &fakeBeginner{}
	svc := newTestService(f, b, time.Now)

	d, err := svc.CreateQuote(context.Background(), &models.SaveQuoteRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
		HolidayDetails: models.HolidayDetails{
			HolidayType:      models.HolidayTypeCruise,
			CruiseLineID:     intPtr(3),
			CruiseCost:       dec("2000.00"),
			CruiseCommission: dec("180.00"),
			Voyages: []models.CruiseItineraryDay{
				{Day: 1, Description: "Southampton"},
				{Day: 2, Description: "At sea"},
			},
			CruiseExtras: []models.CruiseExtra{
				{Name: "Drinks package", Cost: dec("300.00"), Commission: dec("30.00")},
			},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, d.Cruise)
	assert.Len(t, d.Cruise.Itinerary, 2)
	assert.Len(t, d.Cruise.Extras, 1)
	// Cruise cost and extras feed the totals.
	assert.True(t, d.Money.OverallCost.Equal(dec("2300.00")), "got %s", d.Money.OverallCost)
	assert.True(t, d.Money.OverallCommission.Equal(dec("210.00")), "got %s", d.Money.OverallCommission)
}

func TestSwitchingAwayFromCruiseDropsRecord(t *testing.T) {
	f := newFakeStore()
	b := &fakeBeginner{}
	svc := newTestService(f, b, time.Now)

	d, err := svc.CreateQuote(context.Background(), &models.SaveQuoteRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
		HolidayDetails: models.HolidayDetails{
			HolidayType:  models.HolidayTypeCruise,
			CruiseLineID: intPtr(3),
		},
	})
	require.NoError(t, err)
	require.NotNil(t, d.Cruise)

	updated, err := svc.UpdateQuote(context.Background(), d.Quote.ID, &models.SaveQuoteRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
		HolidayDetails: models.HolidayDetails{HolidayType: models.HolidayTypeTailor},
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Cruise)
}

func TestMoneySummaryWithReferral(t *testing.T) {
	f := newFakeStore()
	b := &fakeBeginner{}
	svc := newTestService(f, b, time.Now)

	d, err := svc.CreateQuote(context.Background(), &models.SaveQuoteRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
		HolidayDetails: models.HolidayDetails{
			HolidayType: models.HolidayTypePackage,
			Commission:  dec("20.00"),
			SalesPrice:  dec("1000.00"),
			Discount:    dec("50.00"),
			Flights: []models.FlightSector{
				{SectorBase: models.SectorBase{Cost: dec("100.00"), Commission: dec("10.00")}, DepartingAirportID: 1, ArrivalAirportID: 2},
			},
			Hotels: []models.HotelSector{
				{SectorBase: models.SectorBase{Cost: dec("200.00"), Commission: dec("5.50")}, Name: "Grand"},
			},
			Referral: &models.ReferralInput{ReferrerID: 9, PotentialCommission: dec("10")},
		},
	})
	require.NoError(t, err)

	// commission: 20 + 10 + 5.50 = 35.50; cost: 100+200-50+1000 = 1250
	assert.True(t, d.Money.OverallCommission.Equal(dec("35.50")), "got %s", d.Money.OverallCommission)
	assert.True(t, d.Money.OverallCost.Equal(dec("1250.00")), "got %s", d.Money.OverallCost)
	require.NotNil(t, d.Money.ReferrerCommission)
	require.NotNil(t, d.Money.FinalCommission)
	assert.True(t, d.Money.ReferrerCommission.Equal(dec("3.55")), "got %s", d.Money.ReferrerCommission)
	assert.True(t, d.Money.FinalCommission.Equal(dec("31.95")), "got %s", d.Money.FinalCommission)
}

func TestUpdateEnquiryStatusSnoozes(t *testing.T) {
	f := newFakeStore()
	b := &fakeBeginner{}
	svc := newTestService(f, b, time.Now)

	_, e, err := svc.CreateEnquiry(context.Background(), &models.CreateEnquiryRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
	})
	require.NoError(t, err)
	created := f.enquiries[e.ID].DateCreated

	require.NoError(t, svc.UpdateEnquiryStatus(context.Background(), e.ID, models.EnquiryStatusContacted))
	assert.Equal(t, created.Add(48*time.Hour), f.enquiries[e.ID].DateCreated)
	assert.Equal(t, models.EnquiryStatusContacted, f.enquiries[e.ID].Status)
}

func TestLostEnquiryDoesNotSnooze(t *testing.T) {
	f := newFakeStore()
	b := &fakeBeginner{}
	svc := newTestService(f, b, time.Now)

	_, e, err := svc.CreateEnquiry(context.Background(), &models.CreateEnquiryRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
	})
	require.NoError(t, err)
	created := f.enquiries[e.ID].DateCreated

	require.NoError(t, svc.UpdateEnquiryStatus(context.Background(), e.ID, models.EnquiryStatusLost))
	assert.Equal(t, created, f.enquiries[e.ID].DateCreated)
	assert.Equal(t, models.EnquiryStatusLost, f.enquiries[e.ID].Status)
}

func TestDeleteLastQuoteRevertsTransaction(t *testing.T) {
	f := newFakeStore()
	b := &fakeBeginner{}
	svc := newTestService(f, b, time.Now)

	d, err := svc.CreateQuote(context.Background(), &models.SaveQuoteRequest{
		ClientID: 1, AgentID: 2, LeadSource: "phone",
		HolidayDetails: models.HolidayDetails{HolidayType: models.HolidayTypePackage},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteQuote(context.Background(), d.Quote.ID))
	assert.Equal(t, models.StatusOnEnquiry, f.transactions[d.Transaction.ID].Status)
}
