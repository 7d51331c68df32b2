package models

import "fmt"

// Target описывает пользователя, чьих друзей анализируем: числовой ID или ссылку на профиль.
type Target struct {
	ID  int
	URL string
}

// IsZero сообщает, что цель не задана ни ID, ни ссылкой.
func (t Target) IsZero() bool {
	return t.ID == 0 && t.URL == ""
}

func (t Target) String() string {
	if t.ID != 0 {
		return fmt.Sprintf("https://vk.com/id%d", t.ID)
	}
	return t.URL
}

// Friend представляет друга с указанными в профиле городами.
type Friend struct {
	ID       int
	City     string
	HomeTown string
}

// Places хранит нормализованные названия городов; индекс i в обоих срезах относится к одному другу.
type Places struct {
	Cities    []string
	HomeTowns []string
}

// Add добавляет пару названий для очередного друга.
func (p *Places) Add(city, homeTown string) {
	p.Cities = append(p.Cities, city)
	p.HomeTowns = append(p.HomeTowns, homeTown)
}

func (p *Places) Len() int {
	return len(p.Cities)
}

// Share представляет долю одного города в распределении.
type Share struct {
	Label   string
	Count   int
	Percent float64
}

// Distribution представляет частотное распределение названий.
type Distribution struct {
	Total  int
	Shares []Share
}
