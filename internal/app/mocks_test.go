package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/outbidhq/auction-service/internal/domain/auction"
)

// stubTxManager runs the unit of work inline, standing in for a real
// transaction scope.
type stubTxManager struct {
	calls int
}

func (s *stubTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.calls++
	return fn(ctx)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event auction.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockMonitor struct {
	mock.Mock
}

func (m *MockMonitor) ReportError(err *auction.Error, useCase string) {
	m.Called(err, useCase)
}

func (m *MockMonitor) ReportCrash(err error, useCase string) {
	m.Called(err, useCase)
}

type MockAuctionRepository struct {
	mock.Mock
}

func (m *MockAuctionRepository) Find(ctx context.Context, id uuid.UUID) (auction.Auction, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(auction.Auction), args.Error(1)
}

func (m *MockAuctionRepository) Save(ctx context.Context, a auction.Auction) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

type MockAutoBidRepository struct {
	mock.Mock
}

func (m *MockAutoBidRepository) Find(ctx context.Context, id uuid.UUID) (auction.AutoBid, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(auction.AutoBid), args.Error(1)
}

func (m *MockAutoBidRepository) FindByAuction(ctx context.Context, auctionID uuid.UUID) ([]auction.AutoBid, error) {
	args := m.Called(ctx, auctionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]auction.AutoBid), args.Error(1)
}

func (m *MockAutoBidRepository) Save(ctx context.Context, ab auction.AutoBid) error {
	args := m.Called(ctx, ab)
	return args.Error(0)
}

type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) FindUser(ctx context.Context, id uuid.UUID) (auction.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(auction.User), args.Error(1)
}

type MockItemFinder struct {
	mock.Mock
}

func (m *MockItemFinder) FindItem(ctx context.Context, id uuid.UUID) (auction.Item, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(auction.Item), args.Error(1)
}

// newTestExecutor wires an executor whose publisher and monitor accept
// anything, for service tests that do not assert on them.
func newTestExecutor() *UseCaseExecutor {
	publisher := new(MockPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	monitor := new(MockMonitor)
	monitor.On("ReportError", mock.Anything, mock.Anything).Return()
	monitor.On("ReportCrash", mock.Anything, mock.Anything).Return()
	return NewUseCaseExecutor(&stubTxManager{}, publisher, monitor)
}
