package services

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5"

	"travel-backend/internal/apperrors"
	"travel-backend/internal/expiry"
	"travel-backend/internal/metrics"
	"travel-backend/internal/models"
	"travel-backend/internal/pricing"
	"travel-backend/internal/reconcile"
	"travel-backend/internal/repositories"
)

// TxBeginner opens a database transaction. Satisfied by *pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store interfaces are defined here, on the consumer side, so the
// service can be exercised against fakes. The concrete repositories
// satisfy them.

type TransactionStore interface {
	Insert(ctx context.Context, q repositories.DBTX, t *models.Transaction) error
	Get(ctx context.Context, q repositories.DBTX, id int) (*models.Transaction, error)
	GetForUpdate(ctx context.Context, q repositories.DBTX, id int) (*models.Transaction, error)
	SetStatus(ctx context.Context, q repositories.DBTX, id int, status models.TransactionStatus, clientID, agentID *int) error
	ListByStatus(ctx context.Context, status models.TransactionStatus, limit int) ([]*models.Transaction, error)
}

type EnquiryStore interface {
	Insert(ctx context.Context, q repositories.DBTX, e *models.Enquiry) error
	InsertSelections(ctx context.Context, q repositories.DBTX, e *models.Enquiry) error
	Get(ctx context.Context, q repositories.DBTX, id int) (*models.Enquiry, error)
	GetByTransaction(ctx context.Context, q repositories.DBTX, transactionID int) (*models.Enquiry, error)
	UpdateStatus(ctx context.Context, q repositories.DBTX, id int, status string, bumpedCreated *time.Time) error
	SetFutureDeal(ctx context.Context, q repositories.DBTX, id int, futureDate *time.Time) error
	UnsetFutureDeal(ctx context.Context, q repositories.DBTX, id int, newExpiry time.Time) error
	SoftDelete(ctx context.Context, q repositories.DBTX, id int) error
}

type QuoteStore interface {
	Insert(ctx context.Context, q repositories.DBTX, quote *models.Quote) error
	Update(ctx context.Context, q repositories.DBTX, quote *models.Quote) error
	Get(ctx context.Context, q repositories.DBTX, id int) (*models.Quote, error)
	ListByTransaction(ctx context.Context, q repositories.DBTX, transactionID int) ([]*models.Quote, error)
	HasQuotes(ctx context.Context, q repositories.DBTX, transactionID int) (bool, error)
	SetFutureDeal(ctx context.Context, q repositories.DBTX, id int, futureDate *time.Time) error
	UnsetFutureDeal(ctx context.Context, q repositories.DBTX, id int, newExpiry time.Time) error
	SoftDelete(ctx context.Context, q repositories.DBTX, id int) error
}

type BookingStore interface {
	Insert(ctx context.Context, q repositories.DBTX, b *models.Booking) error
	Update(ctx context.Context, q repositories.DBTX, b *models.Booking) error
	Get(ctx context.Context, q repositories.DBTX, id int) (*models.Booking, error)
	GetByTransaction(ctx context.Context, q repositories.DBTX, transactionID int) (*models.Booking, error)
	SoftDelete(ctx context.Context, q repositories.DBTX, id int) error
}

type SectorStore interface {
	ListFlights(ctx context.Context, q repositories.DBTX, owner models.SectorOwner) ([]models.FlightSector, error)
	InsertFlights(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, mainOperator *int, items []models.FlightSector) error
	UpdateFlight(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, mainOperator *int, item models.FlightSector) error
	DeleteFlights(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, ids []int) error

	ListHotels(ctx context.Context, q repositories.DBTX, owner models.SectorOwner) ([]models.HotelSector, error)
	InsertHotels(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, mainOperator *int, items []models.HotelSector) error
	UpdateHotel(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, mainOperator *int, item models.HotelSector) error
	DeleteHotels(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, ids []int) error

	ListTransfers(ctx context.Context, q repositories.DBTX, owner models.SectorOwner) ([]models.TransferSector, error)
	InsertTransfers(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, mainOperator *int, items []models.TransferSector) error
	UpdateTransfer(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, mainOperator *int, item models.TransferSector) error
	DeleteTransfers(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, ids []int) error

	ListCarHires(ctx context.Context, q repositories.DBTX, owner models.SectorOwner) ([]models.CarHireSector, error)
	InsertCarHires(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, mainOperator *int, items []models.CarHireSector) error
	UpdateCarHire(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, mainOperator *int, item models.CarHireSector) error
	DeleteCarHires(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, ids []int) error

	ListTickets(ctx context.Context, q repositories.DBTX, owner models.SectorOwner) ([]models.AttractionTicketSector, error)
	InsertTickets(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, mainOperator *int, items []models.AttractionTicketSector) error
	UpdateTicket(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, mainOperator *int, item models.AttractionTicketSector) error
	DeleteTickets(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, ids []int) error

	ListLoungePasses(ctx context.Context, q repositories.DBTX, owner models.SectorOwner) ([]models.LoungePassSector, error)
	InsertLoungePasses(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, mainOperator *int, items []models.LoungePassSector) error
	UpdateLoungePass(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, mainOperator *int, item models.LoungePassSector) error
	DeleteLoungePasses(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, ids []int) error

	ListParking(ctx context.Context, q repositories.DBTX, owner models.SectorOwner) ([]models.AirportParkingSector, error)
	InsertParking(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, mainOperator *int, items []models.AirportParkingSector) error
	UpdateParking(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, mainOperator *int, item models.AirportParkingSector) error
	DeleteParking(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, ids []int) error
}

type CruiseStore interface {
	UpsertForOwner(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, c *models.Cruise) error
	ReplaceItinerary(ctx context.Context, q repositories.DBTX, cruiseID int, days []models.CruiseItineraryDay) error
	ReplaceExtras(ctx context.Context, q repositories.DBTX, cruiseID int, extras []models.CruiseExtra) error
	GetForOwner(ctx context.Context, q repositories.DBTX, owner models.SectorOwner) (*models.CruiseDetail, error)
	DeleteForOwner(ctx context.Context, q repositories.DBTX, owner models.SectorOwner) error
}

type PassengerStore interface {
	ReplaceForOwner(ctx context.Context, q repositories.DBTX, owner models.SectorOwner, passengers []models.Passenger) error
	ListForOwner(ctx context.Context, q repositories.DBTX, owner models.SectorOwner) ([]models.Passenger, error)
}

type ReferralStore interface {
	Upsert(ctx context.Context, q repositories.DBTX, transactionID int, in models.ReferralInput) (*models.Referral, error)
	GetByTransaction(ctx context.Context, q repositories.DBTX, transactionID int) (*models.Referral, error)
}

// PipelineDeps wires the service. DB is the shared pool used for plain
// reads; Begin opens the transaction every multi-table write runs in.
type PipelineDeps struct {
	DB    repositories.DBTX
	Begin TxBeginner

	Transactions TransactionStore
	Enquiries    EnquiryStore
	Quotes       QuoteStore
	Bookings     BookingStore
	Sectors      SectorStore
	Cruises      CruiseStore
	Passengers   PassengerStore
	Referrals    ReferralStore

	Now func() time.Time
}

// PipelineService owns the enquiry → quote → booking lifecycle. Every
// mutation that touches more than one table runs inside a single
// database transaction: the phase-entity row, the sector diffs, the
// passenger manifest, the cruise record and the transaction status all
// land or none do.
type PipelineService struct {
	db           repositories.DBTX
	begin        TxBeginner
	transactions TransactionStore
	enquiries    EnquiryStore
	quotes       QuoteStore
	bookings     BookingStore
	sectors      SectorStore
	cruises      CruiseStore
	passengers   PassengerStore
	referrals    ReferralStore
	now          func() time.Time
}

func NewPipelineService(d PipelineDeps) *PipelineService {
	if d.Now == nil {
		d.Now = time.Now
	}
	return &PipelineService{
		db:           d.DB,
		begin:        d.Begin,
		transactions: d.Transactions,
		enquiries:    d.Enquiries,
		quotes:       d.Quotes,
		bookings:     d.Bookings,
		sectors:      d.Sectors,
		cruises:      d.Cruises,
		passengers:   d.Passengers,
		referrals:    d.Referrals,
		now:          d.Now,
	}
}

func validHolidayType(t string) bool {
	switch t {
	case models.HolidayTypePackage, models.HolidayTypeCruise,
		models.HolidayTypeTailor, models.HolidayTypeFlightOnly:
		return true
	}
	return false
}

// CreateEnquiry opens a transaction in the on_enquiry phase together
// with its enquiry row and reference-data selections.
func (s *PipelineService) CreateEnquiry(ctx context.Context, req *models.CreateEnquiryRequest) (*models.Transaction, *models.Enquiry, error) {
	if req.ClientID <= 0 || req.AgentID <= 0 {
		return nil, nil, apperrors.Validation("client_id and agent_id are required")
	}
	if req.LeadSource == "" {
		return nil, nil, apperrors.Validation("lead_source is required")
	}
	if req.HolidayType != nil && !validHolidayType(*req.HolidayType) {
		return nil, nil, apperrors.Validation("unknown holiday type %q", *req.HolidayType)
	}

	dateExpiry, futureDate := expiry.OnCreate(s.now(), req.IsFutureDeal, req.FutureDealDate, req.DateExpiry)

	tx, err := s.begin.Begin(ctx)
	if err != nil {
		return nil, nil, apperrors.Persistence("begin: %v", err)
	}
	defer tx.Rollback(ctx)

	t := &models.Transaction{
		Status:      models.StatusOnEnquiry,
		ClientID:    req.ClientID,
		AgentID:     req.AgentID,
		LeadSource:  req.LeadSource,
		HolidayType: req.HolidayType,
	}
	if err := s.transactions.Insert(ctx, tx, t); err != nil {
		return nil, nil, apperrors.Persistence("insert transaction: %v", err)
	}

	e := &models.Enquiry{
		TransactionID:       t.ID,
		Status:              models.EnquiryStatusNew,
		Adults:              req.Adults,
		Children:            req.Children,
		Infants:             req.Infants,
		NoOfNights:          req.NoOfNights,
		Budget:              req.Budget,
		Notes:               req.Notes,
		IsFutureDeal:        req.IsFutureDeal,
		FutureDealDate:      futureDate,
		DateExpiry:          dateExpiry,
		DepartureDate:       req.DepartureDate,
		DestinationIDs:      req.DestinationIDs,
		DepartureAirportIDs: req.DepartureAirportIDs,
		DeparturePortIDs:    req.DeparturePortIDs,
		CruiseLineIDs:       req.CruiseLineIDs,
		BoardBasisIDs:       req.BoardBasisIDs,
		ResortIDs:           req.ResortIDs,
		AccommodationIDs:    req.AccommodationIDs,
	}
	if err := s.enquiries.Insert(ctx, tx, e); err != nil {
		return nil, nil, apperrors.Persistence("insert enquiry: %v", err)
	}
	if err := s.enquiries.InsertSelections(ctx, tx, e); err != nil {
		return nil, nil, apperrors.Persistence("insert enquiry selections: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, apperrors.Persistence("commit: %v", err)
	}
	log.Printf("[Pipeline] enquiry %d created on transaction %d", e.ID, t.ID)
	metrics.PhaseTransitionsTotal.WithLabelValues(string(models.StatusOnEnquiry)).Inc()
	return t, e, nil
}

// UpdateEnquiryStatus moves a lead through its working states. Any
// change except LOST also bumps date_created forward so the lead
// resurfaces near the top of the recency-sorted board.
func (s *PipelineService) UpdateEnquiryStatus(ctx context.Context, enquiryID int, status string) error {
	if !models.ValidEnquiryStatus(status) {
		return apperrors.Validation("unknown enquiry status %q", status)
	}
	e, err := s.enquiries.Get(ctx, s.db, enquiryID)
	if err != nil {
		return err
	}
	var bumped *time.Time
	if status != models.EnquiryStatusLost {
		b := expiry.Snooze(e.DateCreated)
		bumped = &b
	}
	return s.enquiries.UpdateStatus(ctx, s.db, enquiryID, status, bumped)
}

func (s *PipelineService) SetEnquiryFutureDeal(ctx context.Context, enquiryID int, futureDate *time.Time) error {
	return s.enquiries.SetFutureDeal(ctx, s.db, enquiryID, futureDate)
}

func (s *PipelineService) UnsetEnquiryFutureDeal(ctx context.Context, enquiryID int) error {
	return s.enquiries.UnsetFutureDeal(ctx, s.db, enquiryID, expiry.OnUnsetFutureDeal(s.now()))
}

func (s *PipelineService) DeleteEnquiry(ctx context.Context, enquiryID int) error {
	return s.enquiries.SoftDelete(ctx, s.db, enquiryID)
}

func (s *PipelineService) GetEnquiry(ctx context.Context, enquiryID int) (*models.Enquiry, error) {
	return s.enquiries.Get(ctx, s.db, enquiryID)
}

// CreateQuote prices a transaction. With no transaction id a fresh
// transaction opens directly in the on_quote phase; against an existing
// transaction the phase must still be on_enquiry or on_quote, and an
// on_enquiry transaction advances. The first quote of a transaction
// becomes the primary quote.
func (s *PipelineService) CreateQuote(ctx context.Context, req *models.SaveQuoteRequest) (*models.QuoteDetail, error) {
	if err := validateHolidayDetails(&req.HolidayDetails); err != nil {
		return nil, err
	}
	if req.ClientID <= 0 || req.AgentID <= 0 {
		return nil, apperrors.Validation("client_id and agent_id are required")
	}

	dateExpiry, futureDate := expiry.OnCreate(s.now(), req.IsFutureDeal, req.FutureDealDate, req.DateExpiry)

	tx, err := s.begin.Begin(ctx)
	if err != nil {
		return nil, apperrors.Persistence("begin: %v", err)
	}
	defer tx.Rollback(ctx)

	var transactionID int
	if req.TransactionID == nil {
		t := &models.Transaction{
			Status:      models.StatusOnQuote,
			ClientID:    req.ClientID,
			AgentID:     req.AgentID,
			LeadSource:  req.LeadSource,
			HolidayType: &req.HolidayType,
		}
		if err := s.transactions.Insert(ctx, tx, t); err != nil {
			return nil, apperrors.Persistence("insert transaction: %v", err)
		}
		transactionID = t.ID
	} else {
		transactionID = *req.TransactionID
		t, err := s.transactions.GetForUpdate(ctx, tx, transactionID)
		if err != nil {
			return nil, err
		}
		if t.Status == models.StatusOnBooking {
			return nil, apperrors.Precondition("transaction %d is already booked", transactionID)
		}
		if t.Status == models.StatusOnEnquiry {
			e, err := s.enquiries.GetByTransaction(ctx, tx, transactionID)
			if err == nil {
				if uerr := s.enquiries.UpdateStatus(ctx, tx, e.ID, models.EnquiryStatusQuoted, nil); uerr != nil {
					return nil, apperrors.Persistence("mark enquiry quoted: %v", uerr)
				}
			} else if !apperrors.IsNotFound(err) {
				return nil, err
			}
		}
		if err := s.transactions.SetStatus(ctx, tx, transactionID, models.StatusOnQuote, &req.ClientID, &req.AgentID); err != nil {
			return nil, err
		}
	}

	hasQuotes, err := s.quotes.HasQuotes(ctx, tx, transactionID)
	if err != nil {
		return nil, apperrors.Persistence("check existing quotes: %v", err)
	}

	quote := &models.Quote{
		TransactionID:  transactionID,
		IsPrimary:      !hasQuotes,
		IsFutureDeal:   req.IsFutureDeal,
		FutureDealDate: futureDate,
		DateExpiry:     dateExpiry,
	}
	applyHolidayScalarsToQuote(quote, &req.HolidayDetails)
	if err := s.quotes.Insert(ctx, tx, quote); err != nil {
		return nil, apperrors.Persistence("insert quote: %v", err)
	}

	owner := models.QuoteOwner(quote.ID)
	if err := s.syncSectors(ctx, tx, owner, quote.MainTourOperatorID, &req.HolidayDetails); err != nil {
		return nil, err
	}
	if err := s.syncOwnedLists(ctx, tx, owner, &req.HolidayDetails); err != nil {
		return nil, err
	}
	if req.Referral != nil {
		if _, err := s.referrals.Upsert(ctx, tx, transactionID, *req.Referral); err != nil {
			return nil, apperrors.Persistence("upsert referral: %v", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.Persistence("commit: %v", err)
	}
	log.Printf("[Pipeline] quote %d created on transaction %d (primary=%t)", quote.ID, transactionID, quote.IsPrimary)
	metrics.PhaseTransitionsTotal.WithLabelValues(string(models.StatusOnQuote)).Inc()
	return s.GetQuoteDetail(ctx, quote.ID)
}

// UpdateQuote rewrites a quote's scalars and reconciles every nested
// sector list against the payload in one transaction. Deletes for all
// sector types run first, then inserts, then updates.
func (s *PipelineService) UpdateQuote(ctx context.Context, quoteID int, req *models.SaveQuoteRequest) (*models.QuoteDetail, error) {
	if err := validateHolidayDetails(&req.HolidayDetails); err != nil {
		return nil, err
	}

	tx, err := s.begin.Begin(ctx)
	if err != nil {
		return nil, apperrors.Persistence("begin: %v", err)
	}
	defer tx.Rollback(ctx)

	quote, err := s.quotes.Get(ctx, tx, quoteID)
	if err != nil {
		return nil, err
	}
	if _, err := s.transactions.GetForUpdate(ctx, tx, quote.TransactionID); err != nil {
		return nil, err
	}

	applyHolidayScalarsToQuote(quote, &req.HolidayDetails)
	if err := s.quotes.Update(ctx, tx, quote); err != nil {
		return nil, err
	}

	owner := models.QuoteOwner(quote.ID)
	if err := s.syncSectors(ctx, tx, owner, quote.MainTourOperatorID, &req.HolidayDetails); err != nil {
		return nil, err
	}
	if err := s.syncOwnedLists(ctx, tx, owner, &req.HolidayDetails); err != nil {
		return nil, err
	}
	if req.Referral != nil {
		if _, err := s.referrals.Upsert(ctx, tx, quote.TransactionID, *req.Referral); err != nil {
			return nil, apperrors.Persistence("upsert referral: %v", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.Persistence("commit: %v", err)
	}
	log.Printf("[Pipeline] quote %d updated", quote.ID)
	return s.GetQuoteDetail(ctx, quoteID)
}

func (s *PipelineService) SetQuoteFutureDeal(ctx context.Context, quoteID int, futureDate *time.Time) error {
	return s.quotes.SetFutureDeal(ctx, s.db, quoteID, futureDate)
}

func (s *PipelineService) UnsetQuoteFutureDeal(ctx context.Context, quoteID int) error {
	return s.quotes.UnsetFutureDeal(ctx, s.db, quoteID, expiry.OnUnsetFutureDeal(s.now()))
}

// DeleteQuote soft-deletes a quote. When the last live quote of a
// transaction goes, the transaction drops back to the on_enquiry phase.
func (s *PipelineService) DeleteQuote(ctx context.Context, quoteID int) error {
	tx, err := s.begin.Begin(ctx)
	if err != nil {
		return apperrors.Persistence("begin: %v", err)
	}
	defer tx.Rollback(ctx)

	quote, err := s.quotes.Get(ctx, tx, quoteID)
	if err != nil {
		return err
	}
	if _, err := s.transactions.GetForUpdate(ctx, tx, quote.TransactionID); err != nil {
		return err
	}
	if err := s.quotes.SoftDelete(ctx, tx, quoteID); err != nil {
		return err
	}
	remaining, err := s.quotes.HasQuotes(ctx, tx, quote.TransactionID)
	if err != nil {
		return apperrors.Persistence("check remaining quotes: %v", err)
	}
	if !remaining {
		if err := s.transactions.SetStatus(ctx, tx, quote.TransactionID, models.StatusOnEnquiry, nil, nil); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// ConvertQuoteToBooking advances an on_quote transaction to on_booking.
// The precondition is checked against a locked transaction row; a
// transaction in any other phase is rejected. Booking sectors are
// inserted fresh from the payload, never copied from the quote rows.
func (s *PipelineService) ConvertQuoteToBooking(ctx context.Context, transactionID int, req *models.SaveBookingRequest) (*models.BookingDetail, error) {
	if err := validateHolidayDetails(&req.HolidayDetails); err != nil {
		return nil, err
	}

	tx, err := s.begin.Begin(ctx)
	if err != nil {
		return nil, apperrors.Persistence("begin: %v", err)
	}
	defer tx.Rollback(ctx)

	t, err := s.transactions.GetForUpdate(ctx, tx, transactionID)
	if err != nil {
		return nil, err
	}
	if t.Status != models.StatusOnQuote {
		return nil, apperrors.Precondition("transaction %d is %s, only on_quote transactions can be booked", transactionID, t.Status)
	}

	booking, err := s.writeBooking(ctx, tx, transactionID, req)
	if err != nil {
		return nil, err
	}
	if err := s.transactions.SetStatus(ctx, tx, transactionID, models.StatusOnBooking, &req.ClientID, &req.AgentID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.Persistence("commit: %v", err)
	}
	log.Printf("[Pipeline] transaction %d converted to booking %d", transactionID, booking.ID)
	metrics.PhaseTransitionsTotal.WithLabelValues(string(models.StatusOnBooking)).Inc()
	return s.GetBookingDetail(ctx, booking.ID)
}

// CreateBooking opens a fresh transaction directly in the on_booking
// phase, skipping the enquiry and quote stages.
func (s *PipelineService) CreateBooking(ctx context.Context, req *models.SaveBookingRequest) (*models.BookingDetail, error) {
	if err := validateHolidayDetails(&req.HolidayDetails); err != nil {
		return nil, err
	}
	if req.ClientID <= 0 || req.AgentID <= 0 {
		return nil, apperrors.Validation("client_id and agent_id are required")
	}

	tx, err := s.begin.Begin(ctx)
	if err != nil {
		return nil, apperrors.Persistence("begin: %v", err)
	}
	defer tx.Rollback(ctx)

	t := &models.Transaction{
		Status:      models.StatusOnBooking,
		ClientID:    req.ClientID,
		AgentID:     req.AgentID,
		LeadSource:  req.LeadSource,
		HolidayType: &req.HolidayType,
	}
	if err := s.transactions.Insert(ctx, tx, t); err != nil {
		return nil, apperrors.Persistence("insert transaction: %v", err)
	}

	booking, err := s.writeBooking(ctx, tx, t.ID, req)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.Persistence("commit: %v", err)
	}
	log.Printf("[Pipeline] direct booking %d created on transaction %d", booking.ID, t.ID)
	metrics.PhaseTransitionsTotal.WithLabelValues(string(models.StatusOnBooking)).Inc()
	return s.GetBookingDetail(ctx, booking.ID)
}

// UpdateBooking rewrites a booking's scalars and reconciles its sector
// lists, same shape as UpdateQuote.
func (s *PipelineService) UpdateBooking(ctx context.Context, bookingID int, req *models.SaveBookingRequest) (*models.BookingDetail, error) {
	if err := validateHolidayDetails(&req.HolidayDetails); err != nil {
		return nil, err
	}

	tx, err := s.begin.Begin(ctx)
	if err != nil {
		return nil, apperrors.Persistence("begin: %v", err)
	}
	defer tx.Rollback(ctx)

	booking, err := s.bookings.Get(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, err := s.transactions.GetForUpdate(ctx, tx, booking.TransactionID); err != nil {
		return nil, err
	}

	applyHolidayScalarsToBooking(booking, &req.HolidayDetails)
	if req.BookingReference != nil {
		booking.BookingReference = req.BookingReference
	}
	if err := s.bookings.Update(ctx, tx, booking); err != nil {
		return nil, err
	}

	owner := models.BookingOwner(booking.ID)
	if err := s.syncSectors(ctx, tx, owner, booking.MainTourOperatorID, &req.HolidayDetails); err != nil {
		return nil, err
	}
	if err := s.syncOwnedLists(ctx, tx, owner, &req.HolidayDetails); err != nil {
		return nil, err
	}
	if req.Referral != nil {
		if _, err := s.referrals.Upsert(ctx, tx, booking.TransactionID, *req.Referral); err != nil {
			return nil, apperrors.Persistence("upsert referral: %v", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.Persistence("commit: %v", err)
	}
	log.Printf("[Pipeline] booking %d updated", booking.ID)
	return s.GetBookingDetail(ctx, bookingID)
}

func (s *PipelineService) DeleteBooking(ctx context.Context, bookingID int) error {
	return s.bookings.SoftDelete(ctx, s.db, bookingID)
}

// writeBooking inserts the booking row with its sectors, manifest,
// cruise record and referral, inside the caller's transaction.
func (s *PipelineService) writeBooking(ctx context.Context, tx pgx.Tx, transactionID int, req *models.SaveBookingRequest) (*models.Booking, error) {
	booking := &models.Booking{
		TransactionID:    transactionID,
		BookingReference: req.BookingReference,
	}
	applyHolidayScalarsToBooking(booking, &req.HolidayDetails)
	if err := s.bookings.Insert(ctx, tx, booking); err != nil {
		return nil, apperrors.Persistence("insert booking: %v", err)
	}

	owner := models.BookingOwner(booking.ID)
	if err := s.syncSectors(ctx, tx, owner, booking.MainTourOperatorID, &req.HolidayDetails); err != nil {
		return nil, err
	}
	if err := s.syncOwnedLists(ctx, tx, owner, &req.HolidayDetails); err != nil {
		return nil, err
	}
	if req.Referral != nil {
		if _, err := s.referrals.Upsert(ctx, tx, transactionID, *req.Referral); err != nil {
			return nil, apperrors.Persistence("upsert referral: %v", err)
		}
	}
	return booking, nil
}

// syncSectors reconciles all seven identified sector lists against the
// payload. All diffs are computed up front, then applied in phases:
// every delete first, then every insert, then every update. Removing
// before re-adding avoids transient collisions when a client drops a
// row and re-adds an equivalent one in the same request.
func (s *PipelineService) syncSectors(ctx context.Context, tx pgx.Tx, owner models.SectorOwner, mainOp *int, h *models.HolidayDetails) error {
	existingFlights, err := s.sectors.ListFlights(ctx, tx, owner)
	if err != nil {
		return apperrors.Persistence("load flights: %v", err)
	}
	existingHotels, err := s.sectors.ListHotels(ctx, tx, owner)
	if err != nil {
		return apperrors.Persistence("load hotels: %v", err)
	}
	existingTransfers, err := s.sectors.ListTransfers(ctx, tx, owner)
	if err != nil {
		return apperrors.Persistence("load transfers: %v", err)
	}
	existingCarHires, err := s.sectors.ListCarHires(ctx, tx, owner)
	if err != nil {
		return apperrors.Persistence("load car hires: %v", err)
	}
	existingTickets, err := s.sectors.ListTickets(ctx, tx, owner)
	if err != nil {
		return apperrors.Persistence("load attraction tickets: %v", err)
	}
	existingLounges, err := s.sectors.ListLoungePasses(ctx, tx, owner)
	if err != nil {
		return apperrors.Persistence("load lounge passes: %v", err)
	}
	existingParking, err := s.sectors.ListParking(ctx, tx, owner)
	if err != nil {
		return apperrors.Persistence("load airport parking: %v", err)
	}

	flights := reconcile.Compute(existingFlights, h.Flights)
	hotels := reconcile.Compute(existingHotels, h.Hotels)
	transfers := reconcile.Compute(existingTransfers, h.Transfers)
	carHires := reconcile.Compute(existingCarHires, h.CarHires)
	tickets := reconcile.Compute(existingTickets, h.AttractionTickets)
	lounges := reconcile.Compute(existingLounges, h.LoungePasses)
	parking := reconcile.Compute(existingParking, h.AirportParking)

	countWrites("flight", len(flights.ToInsert), len(flights.ToUpdate), len(flights.ToDeleteIDs))
	countWrites("hotel", len(hotels.ToInsert), len(hotels.ToUpdate), len(hotels.ToDeleteIDs))
	countWrites("transfer", len(transfers.ToInsert), len(transfers.ToUpdate), len(transfers.ToDeleteIDs))
	countWrites("car_hire", len(carHires.ToInsert), len(carHires.ToUpdate), len(carHires.ToDeleteIDs))
	countWrites("attraction_ticket", len(tickets.ToInsert), len(tickets.ToUpdate), len(tickets.ToDeleteIDs))
	countWrites("lounge_pass", len(lounges.ToInsert), len(lounges.ToUpdate), len(lounges.ToDeleteIDs))
	countWrites("airport_parking", len(parking.ToInsert), len(parking.ToUpdate), len(parking.ToDeleteIDs))

	// Phase 1: deletes across every sector type.
	if err := s.sectors.DeleteFlights(ctx, tx, owner, flights.ToDeleteIDs); err != nil {
		return apperrors.Persistence("delete flights: %v", err)
	}
	if err := s.sectors.DeleteHotels(ctx, tx, owner, hotels.ToDeleteIDs); err != nil {
		return apperrors.Persistence("delete hotels: %v", err)
	}
	if err := s.sectors.DeleteTransfers(ctx, tx, owner, transfers.ToDeleteIDs); err != nil {
		return apperrors.Persistence("delete transfers: %v", err)
	}
	if err := s.sectors.DeleteCarHires(ctx, tx, owner, carHires.ToDeleteIDs); err != nil {
		return apperrors.Persistence("delete car hires: %v", err)
	}
	if err := s.sectors.DeleteTickets(ctx, tx, owner, tickets.ToDeleteIDs); err != nil {
		return apperrors.Persistence("delete attraction tickets: %v", err)
	}
	if err := s.sectors.DeleteLoungePasses(ctx, tx, owner, lounges.ToDeleteIDs); err != nil {
		return apperrors.Persistence("delete lounge passes: %v", err)
	}
	if err := s.sectors.DeleteParking(ctx, tx, owner, parking.ToDeleteIDs); err != nil {
		return apperrors.Persistence("delete airport parking: %v", err)
	}

	// Phase 2: inserts.
	if err := s.sectors.InsertFlights(ctx, tx, owner, mainOp, flights.ToInsert); err != nil {
		return apperrors.Persistence("insert flights: %v", err)
	}
	if err := s.sectors.InsertHotels(ctx, tx, owner, mainOp, hotels.ToInsert); err != nil {
		return apperrors.Persistence("insert hotels: %v", err)
	}
	if err := s.sectors.InsertTransfers(ctx, tx, owner, mainOp, transfers.ToInsert); err != nil {
		return apperrors.Persistence("insert transfers: %v", err)
	}
	if err := s.sectors.InsertCarHires(ctx, tx, owner, mainOp, carHires.ToInsert); err != nil {
		return apperrors.Persistence("insert car hires: %v", err)
	}
	if err := s.sectors.InsertTickets(ctx, tx, owner, mainOp, tickets.ToInsert); err != nil {
		return apperrors.Persistence("insert attraction tickets: %v", err)
	}
	if err := s.sectors.InsertLoungePasses(ctx, tx, owner, mainOp, lounges.ToInsert); err != nil {
		return apperrors.Persistence("insert lounge passes: %v", err)
	}
	if err := s.sectors.InsertParking(ctx, tx, owner, mainOp, parking.ToInsert); err != nil {
		return apperrors.Persistence("insert airport parking: %v", err)
	}

	// Phase 3: updates.
	for _, item := range flights.ToUpdate {
		if err := s.sectors.UpdateFlight(ctx, tx, owner, mainOp, item); err != nil {
			return err
		}
	}
	for _, item := range hotels.ToUpdate {
		if err := s.sectors.UpdateHotel(ctx, tx, owner, mainOp, item); err != nil {
			return err
		}
	}
	for _, item := range transfers.ToUpdate {
		if err := s.sectors.UpdateTransfer(ctx, tx, owner, mainOp, item); err != nil {
			return err
		}
	}
	for _, item := range carHires.ToUpdate {
		if err := s.sectors.UpdateCarHire(ctx, tx, owner, mainOp, item); err != nil {
			return err
		}
	}
	for _, item := range tickets.ToUpdate {
		if err := s.sectors.UpdateTicket(ctx, tx, owner, mainOp, item); err != nil {
			return err
		}
	}
	for _, item := range lounges.ToUpdate {
		if err := s.sectors.UpdateLoungePass(ctx, tx, owner, mainOp, item); err != nil {
			return err
		}
	}
	for _, item := range parking.ToUpdate {
		if err := s.sectors.UpdateParking(ctx, tx, owner, mainOp, item); err != nil {
			return err
		}
	}
	return nil
}

// syncOwnedLists writes the non-identified lists: the passenger
// manifest is replaced wholesale, and cruise holidays get their cruise
// record with itinerary and extras. Switching away from the cruise
// holiday type drops the cruise record.
func (s *PipelineService) syncOwnedLists(ctx context.Context, tx pgx.Tx, owner models.SectorOwner, h *models.HolidayDetails) error {
	if err := s.passengers.ReplaceForOwner(ctx, tx, owner, h.Passengers); err != nil {
		return apperrors.Persistence("replace passengers: %v", err)
	}

	if !h.IsCruise() {
		if err := s.cruises.DeleteForOwner(ctx, tx, owner); err != nil {
			return apperrors.Persistence("drop cruise record: %v", err)
		}
		return nil
	}

	cruise := &models.Cruise{
		CruiseLineID: h.CruiseLineID,
		CruiseShipID: h.CruiseShipID,
		CruiseDate:   h.CruiseDate,
		CabinType:    h.CabinType,
		CabinNumber:  h.CabinNumber,
		Cost:         h.CruiseCost,
		Commission:   h.CruiseCommission,
	}
	if err := s.cruises.UpsertForOwner(ctx, tx, owner, cruise); err != nil {
		return apperrors.Persistence("upsert cruise: %v", err)
	}
	if err := s.cruises.ReplaceItinerary(ctx, tx, cruise.ID, h.Voyages); err != nil {
		return apperrors.Persistence("replace cruise itinerary: %v", err)
	}
	if err := s.cruises.ReplaceExtras(ctx, tx, cruise.ID, h.CruiseExtras); err != nil {
		return apperrors.Persistence("replace cruise extras: %v", err)
	}
	return nil
}

// GetQuoteDetail loads the full read shape: quote row, sectors,
// manifest, cruise, referral and the money summary derived from them.
func (s *PipelineService) GetQuoteDetail(ctx context.Context, quoteID int) (*models.QuoteDetail, error) {
	quote, err := s.quotes.Get(ctx, s.db, quoteID)
	if err != nil {
		return nil, err
	}
	t, err := s.transactions.Get(ctx, s.db, quote.TransactionID)
	if err != nil {
		return nil, err
	}

	owner := models.QuoteOwner(quote.ID)
	lists, err := s.loadOwnerLists(ctx, owner)
	if err != nil {
		return nil, err
	}
	referral, err := s.referrals.GetByTransaction(ctx, s.db, quote.TransactionID)
	if err != nil {
		return nil, err
	}

	d := &models.QuoteDetail{
		Quote:        *quote,
		Transaction:  *t,
		Hotels:       lists.hotels,
		Flights:      lists.flights,
		Transfers:    lists.transfers,
		CarHires:     lists.carHires,
		Tickets:      lists.tickets,
		LoungePasses: lists.lounges,
		Parking:      lists.parking,
		Passengers:   lists.passengers,
		Cruise:       lists.cruise,
		Referral:     referral,
	}
	d.Money = moneySummary(lists, pricing.Inputs{
		PackageCommission: quote.PackageCommission,
		Discount:          quote.Discount,
		ServiceCharge:     quote.ServiceCharge,
		SalesPrice:        quote.SalesPrice,
	}, referral)
	return d, nil
}

// GetBookingDetail mirrors GetQuoteDetail for the booking phase.
func (s *PipelineService) GetBookingDetail(ctx context.Context, bookingID int) (*models.BookingDetail, error) {
	booking, err := s.bookings.Get(ctx, s.db, bookingID)
	if err != nil {
		return nil, err
	}
	t, err := s.transactions.Get(ctx, s.db, booking.TransactionID)
	if err != nil {
		return nil, err
	}

	owner := models.BookingOwner(booking.ID)
	lists, err := s.loadOwnerLists(ctx, owner)
	if err != nil {
		return nil, err
	}
	referral, err := s.referrals.GetByTransaction(ctx, s.db, booking.TransactionID)
	if err != nil {
		return nil, err
	}

	d := &models.BookingDetail{
		Booking:      *booking,
		Transaction:  *t,
		Hotels:       lists.hotels,
		Flights:      lists.flights,
		Transfers:    lists.transfers,
		CarHires:     lists.carHires,
		Tickets:      lists.tickets,
		LoungePasses: lists.lounges,
		Parking:      lists.parking,
		Passengers:   lists.passengers,
		Cruise:       lists.cruise,
		Referral:     referral,
	}
	d.Money = moneySummary(lists, pricing.Inputs{
		PackageCommission: booking.PackageCommission,
		Discount:          booking.Discount,
		ServiceCharge:     booking.ServiceCharge,
		SalesPrice:        booking.SalesPrice,
	}, referral)
	return d, nil
}

func (s *PipelineService) ListQuotesByTransaction(ctx context.Context, transactionID int) ([]*models.Quote, error) {
	return s.quotes.ListByTransaction(ctx, s.db, transactionID)
}

func (s *PipelineService) ListTransactions(ctx context.Context, status models.TransactionStatus, limit int) ([]*models.Transaction, error) {
	if !models.ValidStatus(status) {
		return nil, apperrors.Validation("unknown transaction status %q", status)
	}
	return s.transactions.ListByStatus(ctx, status, limit)
}

func (s *PipelineService) GetTransaction(ctx context.Context, id int) (*models.Transaction, error) {
	return s.transactions.Get(ctx, s.db, id)
}

type ownerLists struct {
	flights    []models.FlightSector
	hotels     []models.HotelSector
	transfers  []models.TransferSector
	carHires   []models.CarHireSector
	tickets    []models.AttractionTicketSector
	lounges    []models.LoungePassSector
	parking    []models.AirportParkingSector
	passengers []models.Passenger
	cruise     *models.CruiseDetail
}

func (s *PipelineService) loadOwnerLists(ctx context.Context, owner models.SectorOwner) (*ownerLists, error) {
	var l ownerLists
	var err error
	if l.flights, err = s.sectors.ListFlights(ctx, s.db, owner); err != nil {
		return nil, err
	}
	if l.hotels, err = s.sectors.ListHotels(ctx, s.db, owner); err != nil {
		return nil, err
	}
	if l.transfers, err = s.sectors.ListTransfers(ctx, s.db, owner); err != nil {
		return nil, err
	}
	if l.carHires, err = s.sectors.ListCarHires(ctx, s.db, owner); err != nil {
		return nil, err
	}
	if l.tickets, err = s.sectors.ListTickets(ctx, s.db, owner); err != nil {
		return nil, err
	}
	if l.lounges, err = s.sectors.ListLoungePasses(ctx, s.db, owner); err != nil {
		return nil, err
	}
	if l.parking, err = s.sectors.ListParking(ctx, s.db, owner); err != nil {
		return nil, err
	}
	if l.passengers, err = s.passengers.ListForOwner(ctx, s.db, owner); err != nil {
		return nil, err
	}
	if l.cruise, err = s.cruises.GetForOwner(ctx, s.db, owner); err != nil {
		return nil, err
	}
	return &l, nil
}

// moneySummary folds every cost/commission-bearing row into the derived
// totals and, when a referral exists, splits the commission. All of it
// is computed on read; none of it is stored.
func moneySummary(l *ownerLists, in pricing.Inputs, referral *models.Referral) models.MoneySummary {
	var lines []pricing.Line
	for _, x := range l.flights {
		lines = append(lines, pricing.Line{Cost: x.Cost, Commission: x.Commission})
	}
	for _, x := range l.hotels {
		lines = append(lines, pricing.Line{Cost: x.Cost, Commission: x.Commission})
	}
	for _, x := range l.transfers {
		lines = append(lines, pricing.Line{Cost: x.Cost, Commission: x.Commission})
	}
	for _, x := range l.carHires {
		lines = append(lines, pricing.Line{Cost: x.Cost, Commission: x.Commission})
	}
	for _, x := range l.tickets {
		lines = append(lines, pricing.Line{Cost: x.Cost, Commission: x.Commission})
	}
	for _, x := range l.lounges {
		lines = append(lines, pricing.Line{Cost: x.Cost, Commission: x.Commission})
	}
	for _, x := range l.parking {
		lines = append(lines, pricing.Line{Cost: x.Cost, Commission: x.Commission})
	}
	if l.cruise != nil {
		lines = append(lines, pricing.Line{Cost: l.cruise.Cruise.Cost, Commission: l.cruise.Cruise.Commission})
		for _, x := range l.cruise.Extras {
			lines = append(lines, pricing.Line{Cost: x.Cost, Commission: x.Commission})
		}
	}

	sum := pricing.Overall(lines, in)
	m := models.MoneySummary{
		OverallCommission: sum.OverallCommission,
		OverallCost:       sum.OverallCost,
	}
	if referral != nil {
		referrer, final := pricing.ReferralSplit(sum.OverallCommission, referral.PotentialCommission)
		m.ReferrerCommission = &referrer
		m.FinalCommission = &final
	}
	return m
}

func countWrites(sector string, inserts, updates, deletes int) {
	metrics.SectorWritesTotal.WithLabelValues(sector, "insert").Add(float64(inserts))
	metrics.SectorWritesTotal.WithLabelValues(sector, "update").Add(float64(updates))
	metrics.SectorWritesTotal.WithLabelValues(sector, "delete").Add(float64(deletes))
}

func validateHolidayDetails(h *models.HolidayDetails) error {
	if !validHolidayType(h.HolidayType) {
		return apperrors.Validation("unknown holiday type %q", h.HolidayType)
	}
	for i := range h.Passengers {
		if h.Passengers[i].FirstName == "" && h.Passengers[i].LastName == "" {
			return apperrors.Validation("passenger %d has no name", i)
		}
	}
	return nil
}

func applyHolidayScalarsToQuote(q *models.Quote, h *models.HolidayDetails) {
	q.HolidayType = h.HolidayType
	q.MainTourOperatorID = h.MainTourOperatorID
	q.SalesPrice = h.SalesPrice
	q.PackageCommission = h.Commission
	q.Discount = h.Discount
	q.ServiceCharge = h.ServiceCharge
	q.Adults = h.Adults
	q.Children = h.Children
	q.Infants = h.Infants
	q.NoOfNights = h.NoOfNights
	q.TransferType = h.TransferType
	q.AccommodationID = h.AccommodationID
	q.MainBoardBasisID = h.MainBoardBasisID
	q.RoomType = h.RoomType
	q.CheckInDateTime = h.CheckInDateTime
}

func applyHolidayScalarsToBooking(b *models.Booking, h *models.HolidayDetails) {
	b.HolidayType = h.HolidayType
	b.MainTourOperatorID = h.MainTourOperatorID
	b.SalesPrice = h.SalesPrice
	b.PackageCommission = h.Commission
	b.Discount = h.Discount
	b.ServiceCharge = h.ServiceCharge
	b.Adults = h.Adults
	b.Children = h.Children
	b.Infants = h.Infants
	b.NoOfNights = h.NoOfNights
	b.TransferType = h.TransferType
	b.AccommodationID = h.AccommodationID
	b.MainBoardBasisID = h.MainBoardBasisID
	b.RoomType = h.RoomType
	b.CheckInDateTime = h.CheckInDateTime
}
