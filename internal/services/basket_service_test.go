package services

import (
	"github.com/javajoker/orders-backend/internal/models"
)

func (suite *ServicesTestSuite) setupCatalog() (buyer *models.User, iphone, band models.ProductInfo) {
	partner := suite.createUser("partner@example.com", models.UserTypeShop)
	buyer = suite.createUser("buyer@example.com", models.UserTypeBuyer)
	suite.importFile(partner.ID, "testdata/shop1.yaml")
	return buyer, suite.listingByExternalID(4216292), suite.listingByExternalID(4672670)
}

func (suite *ServicesTestSuite) TestBasketTotal() {
	buyer, iphone, band := suite.setupCatalog()

	added, err := suite.basket.AddItems(suite.ctx, buyer.ID, []BasketItemInput{
		{ProductInfo: iphone.ID, Quantity: 1},
		{ProductInfo: band.ID, Quantity: 2},
	})
	suite.Require().NoError(err)
	suite.Equal(2, added)

	basket, err := suite.basket.Get(suite.ctx, buyer.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(basket)
	suite.Equal(models.OrderStateBasket, basket.State)
	suite.Len(basket.OrderedItems, 2)
	suite.EqualValues(110000+2*2500, basket.TotalSum)
	suite.Equal("Смартфоны", basket.OrderedItems[0].ProductInfo.Product.Category.Name)
}

func (suite *ServicesTestSuite) TestBasketTotalFollowsPriceChanges() {
	buyer, _, band := suite.setupCatalog()

	_, err := suite.basket.AddItems(suite.ctx, buyer.ID, []BasketItemInput{{ProductInfo: band.ID, Quantity: 2}})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.db.Model(&band).Update("price", 100).Error)

	basket, err := suite.basket.Get(suite.ctx, buyer.ID)
	suite.Require().NoError(err)
	suite.EqualValues(200, basket.TotalSum)
}

func (suite *ServicesTestSuite) TestBasketWithoutItems() {
	buyer := suite.createUser("buyer@example.com", models.UserTypeBuyer)

	basket, err := suite.basket.Get(suite.ctx, buyer.ID)
	suite.Require().NoError(err)
	suite.Nil(basket)
}

func (suite *ServicesTestSuite) TestSingleBasketPerUser() {
	buyer, iphone, band := suite.setupCatalog()

	_, err := suite.basket.AddItems(suite.ctx, buyer.ID, []BasketItemInput{{ProductInfo: iphone.ID, Quantity: 1}})
	suite.Require().NoError(err)
	_, err = suite.basket.AddItems(suite.ctx, buyer.ID, []BasketItemInput{{ProductInfo: band.ID, Quantity: 1}})
	suite.Require().NoError(err)

	var baskets int64
	suite.db.Model(&models.Order{}).Where("user_id = ? AND state = ?", buyer.ID, models.OrderStateBasket).Count(&baskets)
	suite.EqualValues(1, baskets)

	// The storage layer refuses a second basket too
	err = suite.db.Create(&models.Order{UserID: buyer.ID, State: models.OrderStateBasket}).Error
	suite.Error(err)
}

func (suite *ServicesTestSuite) TestAddDuplicateItemLeavesBasketUnchanged() {
	buyer, iphone, band := suite.setupCatalog()

	_, err := suite.basket.AddItems(suite.ctx, buyer.ID, []BasketItemInput{{ProductInfo: iphone.ID, Quantity: 1}})
	suite.Require().NoError(err)

	_, err = suite.basket.AddItems(suite.ctx, buyer.ID, []BasketItemInput{
		{ProductInfo: band.ID, Quantity: 1},
		{ProductInfo: iphone.ID, Quantity: 3},
	})
	suite.ErrorIs(err, ErrDuplicateItem)

	basket, err := suite.basket.Get(suite.ctx, buyer.ID)
	suite.Require().NoError(err)
	suite.Require().Len(basket.OrderedItems, 1)
	suite.Equal(1, basket.OrderedItems[0].Quantity)
}

func (suite *ServicesTestSuite) TestAddUnknownListing() {
	buyer, iphone, _ := suite.setupCatalog()

	_, err := suite.basket.AddItems(suite.ctx, buyer.ID, []BasketItemInput{
		{ProductInfo: iphone.ID, Quantity: 1},
		{ProductInfo: 999999, Quantity: 1},
	})
	suite.ErrorIs(err, ErrUnknownProductInfo)
	suite.EqualValues(0, suite.count(&models.OrderItem{}))
}

func (suite *ServicesTestSuite) TestRemoveItemsIsScopedToCaller() {
	buyer, iphone, band := suite.setupCatalog()
	other := suite.createUser("other@example.com", models.UserTypeBuyer)

	_, err := suite.basket.AddItems(suite.ctx, buyer.ID, []BasketItemInput{
		{ProductInfo: iphone.ID, Quantity: 1},
		{ProductInfo: band.ID, Quantity: 1},
	})
	suite.Require().NoError(err)

	basket, err := suite.basket.Get(suite.ctx, buyer.ID)
	suite.Require().NoError(err)
	first, second := basket.OrderedItems[0].ID, basket.OrderedItems[1].ID

	deleted, err := suite.basket.RemoveItems(suite.ctx, other.ID, []uint{first, second})
	suite.Require().NoError(err)
	suite.Zero(deleted)

	deleted, err = suite.basket.RemoveItems(suite.ctx, buyer.ID, []uint{first, 424242})
	suite.Require().NoError(err)
	suite.EqualValues(1, deleted)

	basket, err = suite.basket.Get(suite.ctx, buyer.ID)
	suite.Require().NoError(err)
	suite.Require().Len(basket.OrderedItems, 1)
	suite.Equal(second, basket.OrderedItems[0].ID)
}

func (suite *ServicesTestSuite) TestUpdateItems() {
	buyer, iphone, _ := suite.setupCatalog()
	other := suite.createUser("other@example.com", models.UserTypeBuyer)

	_, err := suite.basket.AddItems(suite.ctx, buyer.ID, []BasketItemInput{{ProductInfo: iphone.ID, Quantity: 1}})
	suite.Require().NoError(err)
	basket, err := suite.basket.Get(suite.ctx, buyer.ID)
	suite.Require().NoError(err)
	itemID := basket.OrderedItems[0].ID

	updated, err := suite.basket.UpdateItems(suite.ctx, other.ID, []BasketItemUpdate{{ID: itemID, Quantity: 5}})
	suite.Require().NoError(err)
	suite.Zero(updated)

	updated, err = suite.basket.UpdateItems(suite.ctx, buyer.ID, []BasketItemUpdate{{ID: itemID, Quantity: 3}})
	suite.Require().NoError(err)
	suite.EqualValues(1, updated)

	basket, err = suite.basket.Get(suite.ctx, buyer.ID)
	suite.Require().NoError(err)
	suite.Equal(3, basket.OrderedItems[0].Quantity)
	suite.EqualValues(3*110000, basket.TotalSum)
}
