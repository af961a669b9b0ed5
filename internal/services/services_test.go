package services

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/javajoker/orders-backend/internal/config"
	"github.com/javajoker/orders-backend/internal/database"
	"github.com/javajoker/orders-backend/internal/models"
	"github.com/javajoker/orders-backend/internal/queue"
)

type ServicesTestSuite struct {
	suite.Suite
	ctx   context.Context
	db    *gorm.DB
	jobs  *queue.MemoryQueue
	cfg   *config.Config
	notes *NotificationService

	auth     *AuthService
	users    *UserService
	contacts *ContactService
	catalog  *CatalogService
	basket   *BasketService
	orders   *OrderService
	partner  *PartnerService
}

func TestServicesTestSuite(t *testing.T) {
	suite.Run(t, new(ServicesTestSuite))
}

func (suite *ServicesTestSuite) SetupTest() {
	suite.ctx = context.Background()

	db, err := database.Initialize(config.DatabaseConfig{
		Driver:       "sqlite",
		Database:     fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString()),
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	suite.Require().NoError(err)
	suite.Require().NoError(database.RunMigrations(db))
	suite.db = db

	suite.cfg = &config.Config{
		JWT:    config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 1},
		Import: config.ImportConfig{FetchTimeout: 5, MaxFeedBytes: 1 << 20},
	}
	suite.jobs = queue.NewMemoryQueue(64)
	suite.notes = NewNotificationService(suite.jobs)

	storage, err := NewStorageService(suite.cfg.AWS)
	suite.Require().NoError(err)

	suite.auth = NewAuthService(db, suite.cfg, suite.notes)
	suite.users = NewUserService(db)
	suite.contacts = NewContactService(db)
	suite.catalog = NewCatalogService(db, NewFeedFetcher(suite.cfg.Import, storage))
	suite.basket = NewBasketService(db)
	suite.orders = NewOrderService(db, suite.notes)
	suite.partner = NewPartnerService(db)
}

func (suite *ServicesTestSuite) TearDownTest() {
	database.Close(suite.db)
}

func (suite *ServicesTestSuite) createUser(email string, userType models.UserType) *models.User {
	user := &models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		UserType:  userType,
		IsActive:  true,
	}
	suite.Require().NoError(user.SetPassword("TestPass123!"))
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *ServicesTestSuite) createContact(userID uint) *models.Contact {
	contact, err := suite.contacts.Create(suite.ctx, userID, &CreateContactRequest{
		City:   "Moscow",
		Street: "Tverskaya",
		House:  "1",
		Phone:  "+79990000000",
	})
	suite.Require().NoError(err)
	return contact
}

func (suite *ServicesTestSuite) importFile(partnerID uint, path string) *ImportResult {
	f, err := os.Open(path)
	suite.Require().NoError(err)
	defer f.Close()

	feed, err := ParseFeed(f)
	suite.Require().NoError(err)

	result, err := suite.catalog.Import(suite.ctx, partnerID, feed, "")
	suite.Require().NoError(err)
	return result
}

func (suite *ServicesTestSuite) listingByExternalID(externalID int64) models.ProductInfo {
	var info models.ProductInfo
	suite.Require().NoError(suite.db.Where("external_id = ?", externalID).First(&info).Error)
	return info
}

func (suite *ServicesTestSuite) count(model interface{}) int64 {
	var n int64
	suite.Require().NoError(suite.db.Model(model).Count(&n).Error)
	return n
}

func (suite *ServicesTestSuite) drainJobs() []queue.Job {
	var jobs []queue.Job
	for suite.jobs.Len() > 0 {
		job, err := suite.jobs.Dequeue(suite.ctx)
		suite.Require().NoError(err)
		jobs = append(jobs, job)
	}
	return jobs
}
