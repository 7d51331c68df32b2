package storage

import "sort"

const saveTargetQuery = `
	MERGE (u:User {id: $id})
	SET u.target = true
`

// saveFriendQuery заменяет прежние города друга, а не добавляет к ним новые.
const saveFriendQuery = `
	MATCH (t:User {id: $target_id})
	MERGE (f:User {id: $id})
	SET f.raw_city = $raw_city, f.raw_home_town = $raw_home_town
	MERGE (t)-[:FRIEND]->(f)
	WITH f
	OPTIONAL MATCH (f)-[old:LIVES_IN|COMES_FROM]->(:City)
	DELETE old
	WITH DISTINCT f
	MERGE (c:City {name: $city})
	MERGE (h:City {name: $home_town})
	MERGE (f)-[:LIVES_IN]->(c)
	MERGE (f)-[:COMES_FROM]->(h)
`

var neo4jQueries = map[string]string{
	// всего сохранённых друзей
	"total_friends": `
		MATCH (:User)-[:FRIEND]->(f:User)
		RETURN COUNT(DISTINCT f) AS total_friends
	`,
	// Топ-5 текущих городов
	"top_cities": `
		MATCH (u:User)-[:LIVES_IN]->(c:City)
		RETURN c.name AS city, COUNT(u) AS user_count
		ORDER BY user_count DESC, city
		LIMIT 5
	`,
	// Топ-5 родных городов
	"top_home_towns": `
		MATCH (u:User)-[:COMES_FROM]->(c:City)
		RETURN c.name AS city, COUNT(u) AS user_count
		ORDER BY user_count DESC, city
		LIMIT 5
	`,
	// куда переезжают: родной город отличается от текущего
	"movers": `
		MATCH (h:City)<-[:COMES_FROM]-(u:User)-[:LIVES_IN]->(c:City)
		WHERE h <> c
		RETURN h.name AS from_city, c.name AS to_city, COUNT(u) AS user_count
		ORDER BY user_count DESC, from_city, to_city
		LIMIT 10
	`,
	// друзья без указанного текущего города
	"unknown_city": `
		MATCH (:User)-[:FRIEND]->(u:User)
		WHERE coalesce(u.raw_city, '') = ''
		RETURN COUNT(DISTINCT u) AS user_count
	`,
}

// QueryNames возвращает имена предопределённых запросов по алфавиту.
func QueryNames() []string {
	names := make([]string, 0, len(neo4jQueries))
	for name := range neo4jQueries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func HasQuery(name string) bool {
	_, ok := neo4jQueries[name]
	return ok
}
