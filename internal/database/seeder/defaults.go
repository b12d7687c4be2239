package seeder

// Defaults returns the seeders the seed command runs, in dependency order:
// jobs reference the seeded company account.
func Defaults() []Seeder {
	return []Seeder{
		UsersSeeder{},
		JobsSeeder{},
	}
}
