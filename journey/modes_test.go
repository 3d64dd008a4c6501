package journey

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/transportnsw/tripplanner/model"
)

var allProductClasses = []model.RouteProductClass{
	model.ProductTrain,
	model.ProductLightRail,
	model.ProductBus,
	model.ProductCoach,
	model.ProductFerry,
	model.ProductSchoolBus,
	model.ProductWalking,
	model.ProductWalkingFootpath,
	model.ProductBicycle,
	model.ProductTakeBicycleOnPublicTransport,
	model.ProductKissAndRide,
	model.ProductParkAndRide,
	model.ProductTaxi,
	model.ProductCar,
}

func TestGTFSModeKey(t *testing.T) {
	withFeed := map[model.RouteProductClass]string{
		model.ProductBus:       FeedBuses,
		model.ProductFerry:     FeedFerries,
		model.ProductLightRail: FeedLightRail,
		model.ProductTrain:     FeedSydneyTrains,
	}

	for _, class := range allProductClasses {
		mode, ok := GTFSModeKey(class)
		if want, hasFeed := withFeed[class]; hasFeed {
			assert.True(t, ok, "class %s should have a feed", class)
			assert.Equal(t, want, mode)
		} else {
			assert.False(t, ok, "class %s should have no feed", class)
			assert.Empty(t, mode)
		}
	}
}

func TestIcon(t *testing.T) {
	assert.Equal(t, "mdi:train", Icon(model.ProductTrain))
	assert.Equal(t, "mdi:tram", Icon(model.ProductLightRail))
	assert.Equal(t, "mdi:ferry", Icon(model.ProductFerry))
	assert.Equal(t, "mdi:bus", Icon(model.ProductCoach))
	assert.Equal(t, "mdi:bus", Icon(model.ProductSchoolBus))
	assert.Equal(t, "mdi:clock", Icon(model.ProductWalking))
	assert.Equal(t, "mdi:clock", Icon(model.ProductTaxi))

	// Every class resolves to some icon.
	for _, class := range allProductClasses {
		assert.NotEmpty(t, Icon(class))
	}
}
