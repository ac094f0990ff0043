package database

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ordersWithPlantPipeline joins orders matching filter to their plant and
// flattens the plant's name, image and category onto each order. plantId is
// stored as a hex string, so it is converted before the lookup; orders whose
// plant no longer exists (or whose plantId is not a valid id) are dropped by
// the unwind.
func ordersWithPlantPipeline(filter bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$addFields", Value: bson.M{
			"plantObjectId": bson.M{"$convert": bson.M{
				"input":   "$plantId",
				"to":      "objectId",
				"onError": nil,
				"onNull":  nil,
			}},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         plantsCollection,
			"localField":   "plantObjectId",
			"foreignField": "_id",
			"as":           "plant",
		}}},
		{{Key: "$unwind", Value: "$plant"}},
		{{Key: "$addFields", Value: bson.M{
			"name":     "$plant.name",
			"image":    "$plant.image",
			"category": "$plant.category",
		}}},
		{{Key: "$project", Value: bson.M{"plant": 0, "plantObjectId": 0}}},
	}
}

// orderTotalsPipeline counts orders and sums their price.
func orderTotalsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"totalRevenue": bson.M{"$sum": "$price"},
			"totalOrder":   bson.M{"$sum": 1},
		}}},
	}
}
