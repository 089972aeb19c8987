package seeder

func Defaults() []Seeder {
	return []Seeder{
		JobSourcesSeeder{},
		DemoJobsSeeder{},
	}
}
