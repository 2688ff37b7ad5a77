package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"github.com/airxelerate/flightboard/internal/logging"
	"github.com/airxelerate/flightboard/internal/models"
	"github.com/airxelerate/flightboard/internal/mykafka"
	"github.com/airxelerate/flightboard/internal/transport"
)

var (
	ErrFlightNotFound  = errors.New("flight not found")
	ErrDuplicateFlight = errors.New("flight already exists")
	ErrInvalidFlight   = errors.New("invalid flight")
)

var (
	carrierRe = regexp.MustCompile(`^[A-Z]{2}$`)
	numberRe  = regexp.MustCompile(`^\d{4}$`)
	airportRe = regexp.MustCompile(`^[A-Z]{3}$`)
)

type FlightService struct {
	DB       *gorm.DB
	ES       *elasticsearch.Client
	Index    string
	Producer *mykafka.Producer
}

func validateFlight(req *transport.FlightRequest) error {
	if !carrierRe.MatchString(req.CarrierCode) {
		return fmt.Errorf("%w: carrier code must be 2 uppercase letters (IATA code)", ErrInvalidFlight)
	}
	if !numberRe.MatchString(req.FlightNumber) {
		return fmt.Errorf("%w: flight number must be exactly 4 digits", ErrInvalidFlight)
	}
	if _, err := time.Parse("2006-01-02", req.FlightDate); err != nil {
		return fmt.Errorf("%w: flight date must be YYYY-MM-DD", ErrInvalidFlight)
	}
	if !airportRe.MatchString(req.Origin) {
		return fmt.Errorf("%w: origin must be 3 uppercase letters (IATA airport code)", ErrInvalidFlight)
	}
	if !airportRe.MatchString(req.Destination) {
		return fmt.Errorf("%w: destination must be 3 uppercase letters (IATA airport code)", ErrInvalidFlight)
	}
	return nil
}

func (s *FlightService) Create(ctx context.Context, req *transport.FlightRequest) (*models.Flight, error) {
	l := logging.FromContext(ctx).With("svc", "flight.create")

	if err := validateFlight(req); err != nil {
		return nil, err
	}

	var existing models.Flight
	err := s.DB.WithContext(ctx).
		Where("carrier_code = ? AND flight_number = ? AND flight_date = ?",
			req.CarrierCode, req.FlightNumber, req.FlightDate).
		First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: flight %s%s on %s",
			ErrDuplicateFlight, req.CarrierCode, req.FlightNumber, req.FlightDate)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("flight lookup: %w", err)
	}

	flight := models.Flight{
		CarrierCode:  req.CarrierCode,
		FlightNumber: req.FlightNumber,
		FlightDate:   req.FlightDate,
		Origin:       req.Origin,
		Destination:  req.Destination,
	}
	if err := s.DB.WithContext(ctx).Create(&flight).Error; err != nil {
		return nil, fmt.Errorf("flight create: %w", err)
	}

	if err := s.indexFlight(ctx, &flight); err != nil {
		l.Error("es index error", "flight_id", flight.ID, "error", err)
	}
	s.publish(ctx, flight.ID, map[string]any{
		"type":      "flight_created",
		"flight_id": flight.ID,
		"flight":    flight.CarrierCode + flight.FlightNumber,
		"date":      flight.FlightDate,
	})
	l.Info("flight created", "flight_id", flight.ID)

	return &flight, nil
}

func (s *FlightService) GetByID(ctx context.Context, id uint) (*models.Flight, error) {
	var flight models.Flight
	if err := s.DB.WithContext(ctx).First(&flight, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrFlightNotFound, id)
		}
		return nil, fmt.Errorf("flight get: %w", err)
	}
	return &flight, nil
}

func (s *FlightService) List(ctx context.Context, offset, limit int) (int64, []models.Flight, error) {
	var total int64
	if err := s.DB.WithContext(ctx).Model(&models.Flight{}).Count(&total).Error; err != nil {
		return 0, nil, fmt.Errorf("flight count: %w", err)
	}

	var flights []models.Flight
	if err := s.DB.WithContext(ctx).Model(&models.Flight{}).
		Order("id ASC").Offset(offset).Limit(limit).Find(&flights).Error; err != nil {
		return 0, nil, fmt.Errorf("flight list: %w", err)
	}
	return total, flights, nil
}

func (s *FlightService) Delete(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "flight.delete", "flight_id", id)

	var flight models.Flight
	if err := s.DB.WithContext(ctx).First(&flight, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: ID %d", ErrFlightNotFound, id)
		}
		return fmt.Errorf("flight get: %w", err)
	}
	if err := s.DB.WithContext(ctx).Delete(&models.Flight{}, id).Error; err != nil {
		return fmt.Errorf("flight delete: %w", err)
	}

	if err := s.removeFromIndex(ctx, id); err != nil {
		l.Error("es delete error", "error", err)
	}
	s.publish(ctx, id, map[string]any{
		"type":      "flight_deleted",
		"flight_id": id,
	})
	l.Info("flight deleted")

	return nil
}

func (s *FlightService) indexFlight(ctx context.Context, flight *models.Flight) error {
	if s.ES == nil {
		return nil
	}
	body, err := json.Marshal(flight)
	if err != nil {
		return err
	}
	res, err := s.ES.Index(
		s.Index,
		bytes.NewReader(body),
		s.ES.Index.WithDocumentID(strconv.FormatUint(uint64(flight.ID), 10)),
		s.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

func (s *FlightService) removeFromIndex(ctx context.Context, id uint) error {
	if s.ES == nil {
		return nil
	}
	res, err := s.ES.Delete(
		s.Index,
		strconv.FormatUint(uint64(id), 10),
		s.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

func (s *FlightService) publish(ctx context.Context, id uint, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, "flight_events", fmt.Sprint(id), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", "flight_events", "error", err)
	}
}
