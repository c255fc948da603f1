package seeder

import "fsti-hub/internal/repository"

type Repositories struct {
	Traffic repository.TrafficRepository
	Events  repository.EventRepository
	News    repository.NewsRepository
}

func Defaults(repos Repositories, fx Fixtures) []Seeder {
	return []Seeder{
		TrafficSeeder{Repo: repos.Traffic, Items: fx.Traffic},
		EventSeeder{Repo: repos.Events, Items: fx.Events},
		NewsSeeder{Repo: repos.News, Items: fx.News},
	}
}
