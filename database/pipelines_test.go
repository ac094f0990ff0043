package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func stageNames(p []bson.D) []string {
	names := make([]string, 0, len(p))
	for _, stage := range p {
		names = append(names, stage[0].Key)
	}
	return names
}

func TestOrdersWithPlantPipeline(t *testing.T) {
	p := ordersWithPlantPipeline(bson.M{"customer.email": "a@example.com"})

	require.Equal(t, []string{"$match", "$addFields", "$lookup", "$unwind", "$addFields", "$project"}, stageNames(p))

	assert.Equal(t, bson.M{"customer.email": "a@example.com"}, p[0][0].Value)

	lookup := p[2][0].Value.(bson.M)
	assert.Equal(t, plantsCollection, lookup["from"])
	assert.Equal(t, "plantObjectId", lookup["localField"])
	assert.Equal(t, "_id", lookup["foreignField"])

	// A plain unwind path, so orders with no matching plant are removed.
	assert.Equal(t, "$plant", p[3][0].Value)

	project := p[5][0].Value.(bson.M)
	assert.Equal(t, 0, project["plant"])
	assert.Equal(t, 0, project["plantObjectId"])
}

func TestOrderTotalsPipeline(t *testing.T) {
	p := orderTotalsPipeline()
	require.Len(t, p, 1)

	group := p[0][0].Value.(bson.M)
	assert.Nil(t, group["_id"])
	assert.Equal(t, bson.M{"$sum": "$price"}, group["totalRevenue"])
	assert.Equal(t, bson.M{"$sum": 1}, group["totalOrder"])
}
