package domain

// TargetColumn is the dataset column the model predicts.
const TargetColumn = "rent"

// FeatureCount is the number of model inputs.
const FeatureCount = 14

// FeatureColumns lists dataset columns in the order coefficients are indexed.
// Training and prediction must both use this order.
var FeatureColumns = [FeatureCount]string{
	"bedrooms",
	"bathrooms",
	"size_sqft",
	"min_to_subway",
	"floor",
	"building_age_yrs",
	"no_fee",
	"has_roofdeck",
	"has_washer_dryer",
	"has_doorman",
	"has_elevator",
	"has_dishwasher",
	"has_patio",
	"has_gym",
}

// FeatureVector holds model inputs ordered as FeatureColumns.
type FeatureVector [FeatureCount]float64

// Listing describes an apartment to price.
type Listing struct {
	Bedrooms       int
	Bathrooms      int
	Size           int
	SubwayDistance int
	Floor          int
	BuildingAge    int
	NoFee          bool
	HasRoofdeck    bool
	HasWasherDryer bool
	HasDoorman     bool
	HasElevator    bool
	HasDishwasher  bool
	HasPatio       bool
	HasGym         bool
}

// Vector converts the listing to model inputs, booleans coerced to 0/1.
func (l Listing) Vector() FeatureVector {
	return FeatureVector{
		float64(l.Bedrooms),
		float64(l.Bathrooms),
		float64(l.Size),
		float64(l.SubwayDistance),
		float64(l.Floor),
		float64(l.BuildingAge),
		boolToFloat(l.NoFee),
		boolToFloat(l.HasRoofdeck),
		boolToFloat(l.HasWasherDryer),
		boolToFloat(l.HasDoorman),
		boolToFloat(l.HasElevator),
		boolToFloat(l.HasDishwasher),
		boolToFloat(l.HasPatio),
		boolToFloat(l.HasGym),
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
