package roster

// UsersKind returns the built-in "users" resource.
func UsersKind() Kind {
	return Kind{
		Name:   "users",
		Label:  "user",
		Fields: []string{"name", "email"},
		Seed: []Fields{
			{"name": "John Doe", "email": "john@example.com"},
			{"name": "Jane Smith", "email": "jane@example.com"},
		},
	}
}

// CarsKind returns the built-in "cars" resource.
func CarsKind() Kind {
	return Kind{
		Name:   "cars",
		Label:  "Car",
		Fields: []string{"name", "model"},
		Seed: []Fields{
			{"name": "Toyota", "model": "Corolla"},
			{"name": "Honda", "model": "Civic"},
		},
	}
}

// DefaultKinds returns every built-in kind. Each call returns fresh seed maps.
func DefaultKinds() Kinds {
	return Kinds{UsersKind(), CarsKind()}
}
