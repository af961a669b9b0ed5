package services

import (
	"strconv"

	"github.com/javajoker/orders-backend/internal/models"
	"github.com/javajoker/orders-backend/internal/queue"
)

func (suite *ServicesTestSuite) fillBasket(buyer *models.User, items ...BasketItemInput) *models.Order {
	_, err := suite.basket.AddItems(suite.ctx, buyer.ID, items)
	suite.Require().NoError(err)
	basket, err := suite.basket.Get(suite.ctx, buyer.ID)
	suite.Require().NoError(err)
	return basket
}

func (suite *ServicesTestSuite) TestCheckout() {
	buyer, iphone, _ := suite.setupCatalog()
	contact := suite.createContact(buyer.ID)
	basket := suite.fillBasket(buyer, BasketItemInput{ProductInfo: iphone.ID, Quantity: 1})
	suite.drainJobs()

	placed, err := suite.orders.Checkout(suite.ctx, buyer.ID, &CheckoutRequest{ID: basket.ID, Contact: contact.ID})
	suite.Require().NoError(err)
	suite.True(placed)

	orders, err := suite.orders.List(suite.ctx, buyer.ID)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.Equal(models.OrderStateNew, orders[0].State)
	suite.Require().NotNil(orders[0].Contact)
	suite.Equal(contact.ID, orders[0].Contact.ID)
	suite.EqualValues(110000, orders[0].TotalSum)

	jobs := suite.drainJobs()
	suite.Require().Len(jobs, 1)
	suite.Equal(queue.JobOrderPlaced, jobs[0].Type)
	suite.Equal(strconv.FormatUint(uint64(basket.ID), 10), jobs[0].Data["order_id"])

	// The basket is gone; a new one starts empty
	next, err := suite.basket.Get(suite.ctx, buyer.ID)
	suite.Require().NoError(err)
	suite.Nil(next)
}

func (suite *ServicesTestSuite) TestCheckoutIsOneWay() {
	buyer, iphone, _ := suite.setupCatalog()
	contact := suite.createContact(buyer.ID)
	basket := suite.fillBasket(buyer, BasketItemInput{ProductInfo: iphone.ID, Quantity: 1})

	placed, err := suite.orders.Checkout(suite.ctx, buyer.ID, &CheckoutRequest{ID: basket.ID, Contact: contact.ID})
	suite.Require().NoError(err)
	suite.True(placed)

	placed, err = suite.orders.Checkout(suite.ctx, buyer.ID, &CheckoutRequest{ID: basket.ID, Contact: contact.ID})
	suite.Require().NoError(err)
	suite.False(placed)

	// Removing lines of a placed order is a no-op
	deleted, err := suite.basket.RemoveItems(suite.ctx, buyer.ID, []uint{basket.OrderedItems[0].ID})
	suite.Require().NoError(err)
	suite.Zero(deleted)
}

func (suite *ServicesTestSuite) TestCheckoutForeignBasket() {
	buyer, iphone, _ := suite.setupCatalog()
	intruder := suite.createUser("intruder@example.com", models.UserTypeBuyer)
	contact := suite.createContact(intruder.ID)
	basket := suite.fillBasket(buyer, BasketItemInput{ProductInfo: iphone.ID, Quantity: 1})

	placed, err := suite.orders.Checkout(suite.ctx, intruder.ID, &CheckoutRequest{ID: basket.ID, Contact: contact.ID})
	suite.Require().NoError(err)
	suite.False(placed)

	var order models.Order
	suite.Require().NoError(suite.db.First(&order, basket.ID).Error)
	suite.Equal(models.OrderStateBasket, order.State)
	suite.Nil(order.ContactID)
}

func (suite *ServicesTestSuite) TestCheckoutWithForeignContact() {
	buyer, iphone, _ := suite.setupCatalog()
	other := suite.createUser("other@example.com", models.UserTypeBuyer)
	contact := suite.createContact(other.ID)
	basket := suite.fillBasket(buyer, BasketItemInput{ProductInfo: iphone.ID, Quantity: 1})

	_, err := suite.orders.Checkout(suite.ctx, buyer.ID, &CheckoutRequest{ID: basket.ID, Contact: contact.ID})
	suite.ErrorIs(err, ErrContactNotFound)
}

func (suite *ServicesTestSuite) TestPartnerOrdersCountOnlyOwnLines() {
	partnerA := suite.createUser("a@example.com", models.UserTypeShop)
	partnerB := suite.createUser("b@example.com", models.UserTypeShop)
	buyer := suite.createUser("buyer@example.com", models.UserTypeBuyer)
	suite.importFile(partnerA.ID, "testdata/shop1.yaml")
	suite.importFile(partnerB.ID, "testdata/minimal.yaml")
	contact := suite.createContact(buyer.ID)

	basket := suite.fillBasket(buyer,
		BasketItemInput{ProductInfo: suite.listingByExternalID(4672670).ID, Quantity: 2},
		BasketItemInput{ProductInfo: suite.listingByExternalID(100).ID, Quantity: 3},
	)

	// Baskets are not visible to partners
	orders, err := suite.orders.PartnerOrders(suite.ctx, partnerB.ID)
	suite.Require().NoError(err)
	suite.Empty(orders)

	placed, err := suite.orders.Checkout(suite.ctx, buyer.ID, &CheckoutRequest{ID: basket.ID, Contact: contact.ID})
	suite.Require().NoError(err)
	suite.Require().True(placed)

	orders, err = suite.orders.PartnerOrders(suite.ctx, partnerB.ID)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.EqualValues(3*50, orders[0].TotalSum)

	orders, err = suite.orders.PartnerOrders(suite.ctx, partnerA.ID)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.EqualValues(2*2500, orders[0].TotalSum)

	buyerOrders, err := suite.orders.List(suite.ctx, buyer.ID)
	suite.Require().NoError(err)
	suite.EqualValues(3*50+2*2500, buyerOrders[0].TotalSum)
}
