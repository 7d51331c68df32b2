package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/ZetoOfficial/vk-friends-cities/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryNames(t *testing.T) {
	assert.Equal(t, []string{"movers", "top_cities", "top_home_towns", "total_friends", "unknown_city"}, QueryNames())
	assert.True(t, HasQuery("top_cities"))
	assert.False(t, HasQuery("top_groups"))
}

func newLazyStorage(t *testing.T) *Neo4jStorage {
	t.Helper()
	// драйвер не подключается до первого запроса
	s, err := NewNeo4jStorage("neo4j://127.0.0.1:1", "neo4j", "secret")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestSaveFriendsRejectsMisalignedPlaces(t *testing.T) {
	s := newLazyStorage(t)

	var places models.Places
	places.Add("Москва", "Тверь")
	err := s.SaveFriends(context.Background(), 1, []models.Friend{{ID: 2}, {ID: 3}}, places)
	require.ErrorContains(t, err, "2 friends but 1 places")
}

func TestRunQueryUnknown(t *testing.T) {
	s := newLazyStorage(t)

	_, err := s.RunQuery(context.Background(), "top_groups")
	require.ErrorContains(t, err, "query top_groups not found")
}

func TestNewNeo4jStorageBadURI(t *testing.T) {
	_, err := NewNeo4jStorage("ftp://nowhere", "neo4j", "secret")
	require.Error(t, err)
}

func TestSaveFriendQueryReplacesOldCities(t *testing.T) {
	del := strings.Index(saveFriendQuery, "DELETE old")
	require.NotEqual(t, -1, del)
	assert.Contains(t, saveFriendQuery, "OPTIONAL MATCH (f)-[old:LIVES_IN|COMES_FROM]->(:City)")

	livesIn := strings.Index(saveFriendQuery, "MERGE (f)-[:LIVES_IN]->(c)")
	comesFrom := strings.Index(saveFriendQuery, "MERGE (f)-[:COMES_FROM]->(h)")
	require.NotEqual(t, -1, livesIn)
	require.NotEqual(t, -1, comesFrom)
	assert.Less(t, del, livesIn)
	assert.Less(t, del, comesFrom)
	// друг не должен размножаться по числу удалённых связей
	assert.Contains(t, saveFriendQuery[del:livesIn], "WITH DISTINCT f")
}
