package service

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/iqtest-api/internal/domain/entity"
	"github.com/yourusername/iqtest-api/internal/events"
)

// MockTestResultRepo mocks repository.TestResultRepository.
type MockTestResultRepo struct {
	mock.Mock
}

func (m *MockTestResultRepo) Save(result *entity.TestResult) error {
	args := m.Called(result)
	return args.Error(0)
}

func (m *MockTestResultRepo) GetByUser(userID uint, limit, offset int) ([]entity.TestResult, int64, error) {
	args := m.Called(userID, limit, offset)
	var results []entity.TestResult
	if args.Get(0) != nil {
		results = args.Get(0).([]entity.TestResult)
	}
	return results, args.Get(1).(int64), args.Error(2)
}

func (m *MockTestResultRepo) GetByUserSince(userID uint, since time.Time) ([]entity.TestResult, error) {
	args := m.Called(userID, since)
	var results []entity.TestResult
	if args.Get(0) != nil {
		results = args.Get(0).([]entity.TestResult)
	}
	return results, args.Error(1)
}

func (m *MockTestResultRepo) GetByUserBetween(userID uint, from, to time.Time) ([]entity.TestResult, error) {
	args := m.Called(userID, from, to)
	var results []entity.TestResult
	if args.Get(0) != nil {
		results = args.Get(0).([]entity.TestResult)
	}
	return results, args.Error(1)
}

func (m *MockTestResultRepo) ListUserIDsSince(since time.Time, minResults int) ([]uint, error) {
	args := m.Called(since, minResults)
	var ids []uint
	if args.Get(0) != nil {
		ids = args.Get(0).([]uint)
	}
	return ids, args.Error(1)
}

// MockProfileRepo mocks repository.ProfileRepository.
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetByUserID(userID uint) (*entity.UserProfile, error) {
	args := m.Called(userID)
	var profile *entity.UserProfile
	if args.Get(0) != nil {
		profile = args.Get(0).(*entity.UserProfile)
	}
	return profile, args.Error(1)
}

// MockCacheRepo mocks repository.CacheRepository.
type MockCacheRepo struct {
	mock.Mock
}

func (m *MockCacheRepo) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepo) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepo) Exists(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepo) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepo) SetNX(key string, value interface{}, expiration time.Duration) (bool, error) {
	args := m.Called(key, value, expiration)
	return args.Bool(0), args.Error(1)
}

// MockPublisher mocks events.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishTestCompleted(event events.TestCompletedEvent) error {
	args := m.Called(event)
	return args.Error(0)
}
