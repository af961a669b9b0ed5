package services

import (
	"errors"
	"strings"

	"github.com/javajoker/orders-backend/internal/models"
	"github.com/javajoker/orders-backend/internal/utils"
)

func (suite *ServicesTestSuite) TestImportMinimalFeed() {
	partner := suite.createUser("partner@example.com", models.UserTypeShop)

	result := suite.importFile(partner.ID, "testdata/minimal.yaml")

	suite.Equal(1, result.Categories)
	suite.Equal(1, result.ProductInfos)
	suite.EqualValues(1, suite.count(&models.Shop{}))
	suite.EqualValues(1, suite.count(&models.Category{}))
	suite.EqualValues(1, suite.count(&models.Product{}))
	suite.EqualValues(1, suite.count(&models.ProductInfo{}))

	info := suite.listingByExternalID(100)
	suite.EqualValues(50, info.Price)
	suite.EqualValues(60, info.PriceRRC)
	suite.Equal(result.ShopID, info.ShopID)

	var shop models.Shop
	suite.Require().NoError(suite.db.Preload("Categories").First(&shop, result.ShopID).Error)
	suite.Equal("Shop1", shop.Name)
	suite.Equal(partner.ID, shop.UserID)
	suite.True(shop.State)
	suite.Require().Len(shop.Categories, 1)
	suite.Equal(uint(1), shop.Categories[0].ID)
}

func (suite *ServicesTestSuite) TestImportKeepsParameterText() {
	partner := suite.createUser("partner@example.com", models.UserTypeShop)
	suite.importFile(partner.ID, "testdata/shop1.yaml")

	suite.EqualValues(3, suite.count(&models.ProductInfo{}))
	suite.EqualValues(4, suite.count(&models.Parameter{}))
	suite.EqualValues(9, suite.count(&models.ProductParameter{}))

	info := suite.listingByExternalID(4216313)
	var pp models.ProductParameter
	err := suite.db.Joins("Parameter").
		Where("product_parameters.product_info_id = ? AND Parameter.name = ?", info.ID, "Диагональ (дюйм)").
		First(&pp).Error
	suite.Require().NoError(err)
	suite.Equal("6.1", pp.Value)
}

func (suite *ServicesTestSuite) TestReimportReplacesOnlyOwnListings() {
	partnerA := suite.createUser("a@example.com", models.UserTypeShop)
	partnerB := suite.createUser("b@example.com", models.UserTypeShop)

	suite.importFile(partnerA.ID, "testdata/shop1.yaml")
	suite.importFile(partnerB.ID, "testdata/minimal.yaml")
	otherListing := suite.listingByExternalID(100)

	before := suite.listingByExternalID(4216292)
	suite.importFile(partnerA.ID, "testdata/shop1.yaml")
	after := suite.listingByExternalID(4216292)

	suite.NotEqual(before.ID, after.ID)
	suite.EqualValues(4, suite.count(&models.ProductInfo{}))
	suite.EqualValues(2, suite.count(&models.Shop{}))

	// Products and parameters are shared and reused
	suite.EqualValues(4, suite.count(&models.Product{}))
	suite.EqualValues(5, suite.count(&models.Parameter{}))

	suite.Equal(otherListing.ID, suite.listingByExternalID(100).ID)
}

func (suite *ServicesTestSuite) TestReimportDropsBasketLinesOfReplacedListings() {
	partner := suite.createUser("partner@example.com", models.UserTypeShop)
	buyer := suite.createUser("buyer@example.com", models.UserTypeBuyer)
	suite.importFile(partner.ID, "testdata/minimal.yaml")

	_, err := suite.basket.AddItems(suite.ctx, buyer.ID, []BasketItemInput{
		{ProductInfo: suite.listingByExternalID(100).ID, Quantity: 1},
	})
	suite.Require().NoError(err)

	suite.importFile(partner.ID, "testdata/minimal.yaml")

	basket, err := suite.basket.Get(suite.ctx, buyer.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(basket)
	suite.Empty(basket.OrderedItems)
	suite.Zero(basket.TotalSum)
}

func (suite *ServicesTestSuite) TestImportRejectsShopOwnedByAnotherPartner() {
	owner := suite.createUser("owner@example.com", models.UserTypeShop)
	other := suite.createUser("other@example.com", models.UserTypeShop)
	suite.importFile(owner.ID, "testdata/minimal.yaml")

	feed, err := ParseFeed(strings.NewReader("shop: Shop1\ncategories: []\ngoods: []\n"))
	suite.Require().NoError(err)

	_, err = suite.catalog.Import(suite.ctx, other.ID, feed, "")
	suite.ErrorIs(err, ErrShopNameTaken)
	suite.EqualValues(1, suite.count(&models.ProductInfo{}))
}

func (suite *ServicesTestSuite) TestImportRollsBackOnDuplicateGood() {
	partner := suite.createUser("partner@example.com", models.UserTypeShop)
	suite.importFile(partner.ID, "testdata/minimal.yaml")

	feed, err := ParseFeed(strings.NewReader(`
shop: Shop1
categories:
  - {id: 1, name: Gadgets}
goods:
  - {id: 7, category: 1, name: Twice, price: 1, price_rrc: 1, quantity: 1}
  - {id: 7, category: 1, name: Twice, price: 2, price_rrc: 2, quantity: 1}
`))
	suite.Require().NoError(err)

	_, err = suite.catalog.Import(suite.ctx, partner.ID, feed, "")
	var feedErr *FeedError
	suite.True(errors.As(err, &feedErr))

	// The previous catalog is untouched
	suite.EqualValues(1, suite.count(&models.ProductInfo{}))
	suite.EqualValues(50, suite.listingByExternalID(100).Price)
}

func (suite *ServicesTestSuite) TestImportRejectsRenamedCategory() {
	partner := suite.createUser("partner@example.com", models.UserTypeShop)
	suite.importFile(partner.ID, "testdata/minimal.yaml")

	feed, err := ParseFeed(strings.NewReader("shop: Shop1\ncategories:\n  - {id: 1, name: Other}\ngoods: []\n"))
	suite.Require().NoError(err)

	_, err = suite.catalog.Import(suite.ctx, partner.ID, feed, "")
	var feedErr *FeedError
	suite.Require().True(errors.As(err, &feedErr))
	suite.Contains(feedErr.Reason, "category 1")
}

func (suite *ServicesTestSuite) TestImportFromURLValidatesBeforeFetching() {
	partner := suite.createUser("partner@example.com", models.UserTypeShop)

	_, err := suite.catalog.ImportFromURL(suite.ctx, partner.ID, &ImportFeedRequest{URL: "not a url"})
	suite.Error(err)
	suite.NotEmpty(utils.GetValidationErrors(err))
	suite.EqualValues(0, suite.count(&models.Shop{}))
}

func (suite *ServicesTestSuite) TestImportFromS3WithoutStorage() {
	partner := suite.createUser("partner@example.com", models.UserTypeShop)

	_, err := suite.catalog.ImportFromURL(suite.ctx, partner.ID, &ImportFeedRequest{URL: "s3://feeds/shop1.yaml"})
	suite.ErrorIs(err, ErrStorageNotConfigured)
}

func (suite *ServicesTestSuite) TestListProductsHidesInactiveShops() {
	partnerA := suite.createUser("a@example.com", models.UserTypeShop)
	partnerB := suite.createUser("b@example.com", models.UserTypeShop)
	suite.importFile(partnerA.ID, "testdata/shop1.yaml")
	suite.importFile(partnerB.ID, "testdata/minimal.yaml")

	params := utils.PaginationParams{Page: 1, Limit: 50}

	infos, total, err := suite.catalog.ListProducts(suite.ctx, ProductFilter{PaginationParams: params})
	suite.Require().NoError(err)
	suite.EqualValues(4, total)
	suite.Len(infos, 4)

	category := uint(224)
	infos, total, err = suite.catalog.ListProducts(suite.ctx, ProductFilter{CategoryID: &category, PaginationParams: params})
	suite.Require().NoError(err)
	suite.EqualValues(2, total)
	suite.Equal("Смартфоны", infos[0].Product.Category.Name)
	suite.NotEmpty(infos[0].ProductParameters)

	_, err = suite.partner.SetState(suite.ctx, partnerA.ID, false)
	suite.Require().NoError(err)

	infos, total, err = suite.catalog.ListProducts(suite.ctx, ProductFilter{PaginationParams: params})
	suite.Require().NoError(err)
	suite.EqualValues(1, total)
	suite.EqualValues(100, infos[0].ExternalID)

	shops, total, err := suite.catalog.ListShops(suite.ctx, params)
	suite.Require().NoError(err)
	suite.EqualValues(1, total)
	suite.Equal("Shop1", shops[0].Name)
}
