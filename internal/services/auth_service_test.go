package services

import (
	"time"

	"github.com/javajoker/orders-backend/internal/models"
	"github.com/javajoker/orders-backend/internal/queue"
	"github.com/javajoker/orders-backend/internal/utils"
)

func (suite *ServicesTestSuite) registerRequest() *RegisterRequest {
	return &RegisterRequest{
		FirstName: "Ivan",
		LastName:  "Petrov",
		Email:     "Ivan@Example.com",
		Password:  "TestPass123!",
		Company:   "Acme",
		Position:  "Buyer",
	}
}

func (suite *ServicesTestSuite) TestRegisterConfirmLogin() {
	user, err := suite.auth.Register(suite.ctx, suite.registerRequest())
	suite.Require().NoError(err)
	suite.False(user.IsActive)
	suite.Equal(models.UserTypeBuyer, user.UserType)
	suite.Equal("ivan@example.com", user.Email)

	jobs := suite.drainJobs()
	suite.Require().Len(jobs, 1)
	suite.Equal(queue.JobUserRegistered, jobs[0].Type)
	token := jobs[0].Data["token"]
	suite.NotEmpty(token)

	_, err = suite.auth.Login(suite.ctx, &LoginRequest{Email: "ivan@example.com", Password: "TestPass123!"})
	suite.ErrorIs(err, ErrInactiveAccount)

	err = suite.auth.ConfirmAccount(suite.ctx, &ConfirmAccountRequest{Email: "ivan@example.com", Token: "wrong"})
	suite.ErrorIs(err, ErrInvalidConfirmToken)

	suite.Require().NoError(suite.auth.ConfirmAccount(suite.ctx, &ConfirmAccountRequest{Email: "ivan@example.com", Token: token}))

	// Tokens are single use
	err = suite.auth.ConfirmAccount(suite.ctx, &ConfirmAccountRequest{Email: "ivan@example.com", Token: token})
	suite.ErrorIs(err, ErrInvalidConfirmToken)

	_, err = suite.auth.Login(suite.ctx, &LoginRequest{Email: "ivan@example.com", Password: "wrong"})
	suite.ErrorIs(err, ErrInvalidCredentials)

	jwt, err := suite.auth.Login(suite.ctx, &LoginRequest{Email: "ivan@example.com", Password: "TestPass123!"})
	suite.Require().NoError(err)

	claims, err := utils.ValidateJWT(jwt)
	suite.Require().NoError(err)
	suite.Equal(user.ID, claims.UserID)
	suite.Equal("buyer", claims.UserType)
}

func (suite *ServicesTestSuite) TestRegisterDuplicateEmail() {
	_, err := suite.auth.Register(suite.ctx, suite.registerRequest())
	suite.Require().NoError(err)

	_, err = suite.auth.Register(suite.ctx, suite.registerRequest())
	suite.ErrorIs(err, ErrUserExists)
}

func (suite *ServicesTestSuite) TestRegisterRejectsWeakPassword() {
	req := suite.registerRequest()
	req.Password = "short"

	_, err := suite.auth.Register(suite.ctx, req)
	suite.Require().Error(err)
	suite.Contains(utils.GetValidationErrors(err), "password")
	suite.EqualValues(0, suite.count(&models.User{}))
}

func (suite *ServicesTestSuite) TestPasswordReset() {
	user := suite.createUser("reset@example.com", models.UserTypeBuyer)

	// Unknown emails are accepted without issuing anything
	suite.Require().NoError(suite.auth.RequestPasswordReset(suite.ctx, &PasswordResetRequest{Email: "nobody@example.com"}))
	suite.Empty(suite.drainJobs())

	suite.Require().NoError(suite.auth.RequestPasswordReset(suite.ctx, &PasswordResetRequest{Email: user.Email}))
	jobs := suite.drainJobs()
	suite.Require().Len(jobs, 1)
	suite.Equal(queue.JobPasswordReset, jobs[0].Type)
	token := jobs[0].Data["token"]

	err := suite.auth.ConfirmPasswordReset(suite.ctx, &PasswordResetConfirmRequest{
		Token: "not-issued", Password: "NewPass456!",
	})
	suite.ErrorIs(err, ErrInvalidResetToken)

	suite.Require().NoError(suite.auth.ConfirmPasswordReset(suite.ctx, &PasswordResetConfirmRequest{
		Token: token, Password: "NewPass456!",
	}))

	_, err = suite.auth.Login(suite.ctx, &LoginRequest{Email: user.Email, Password: "NewPass456!"})
	suite.NoError(err)
	suite.EqualValues(0, suite.count(&models.PasswordResetToken{}))
}

func (suite *ServicesTestSuite) TestExpiredPasswordReset() {
	user := suite.createUser("reset@example.com", models.UserTypeBuyer)
	suite.Require().NoError(suite.db.Create(&models.PasswordResetToken{
		UserID:    user.ID,
		Key:       "expired-token",
		ExpiresAt: time.Now().Add(-time.Minute),
	}).Error)

	err := suite.auth.ConfirmPasswordReset(suite.ctx, &PasswordResetConfirmRequest{
		Token: "expired-token", Password: "NewPass456!",
	})
	suite.ErrorIs(err, ErrInvalidResetToken)
}

func (suite *ServicesTestSuite) TestUpdateDetailsIsPartial() {
	user := suite.createUser("details@example.com", models.UserTypeBuyer)
	suite.createContact(user.ID)

	company := "New Co"
	updated, err := suite.users.UpdateDetails(suite.ctx, user.ID, &UpdateUserDetailsRequest{Company: &company})
	suite.Require().NoError(err)
	suite.Equal("New Co", updated.Company)
	suite.Equal("Test", updated.FirstName)
	suite.Len(updated.Contacts, 1)

	weak := "weak"
	_, err = suite.users.UpdateDetails(suite.ctx, user.ID, &UpdateUserDetailsRequest{Password: &weak})
	suite.Error(err)
}

func (suite *ServicesTestSuite) TestContactsAreScopedToOwner() {
	owner := suite.createUser("owner@example.com", models.UserTypeBuyer)
	other := suite.createUser("other@example.com", models.UserTypeBuyer)
	contact := suite.createContact(owner.ID)

	city := "Kazan"
	_, err := suite.contacts.Update(suite.ctx, other.ID, &UpdateContactRequest{ID: contact.ID, City: &city})
	suite.ErrorIs(err, ErrContactNotFound)

	updated, err := suite.contacts.Update(suite.ctx, owner.ID, &UpdateContactRequest{ID: contact.ID, City: &city})
	suite.Require().NoError(err)
	suite.Equal("Kazan", updated.City)
	suite.Equal("Tverskaya", updated.Street)

	deleted, err := suite.contacts.Delete(suite.ctx, other.ID, []uint{contact.ID})
	suite.Require().NoError(err)
	suite.Zero(deleted)

	deleted, err = suite.contacts.Delete(suite.ctx, owner.ID, []uint{contact.ID})
	suite.Require().NoError(err)
	suite.EqualValues(1, deleted)

	contacts, err := suite.contacts.List(suite.ctx, owner.ID)
	suite.Require().NoError(err)
	suite.Empty(contacts)
}
