package domain

// UserProfile models a registered person. Name is the identity key and never
// changes after registration.
type UserProfile struct {
	Name     string  `json:"name"`
	Age      int     `json:"age"`
	WeightKg float64 `json:"weightKg"`
	HeightM  float64 `json:"heightM"`
	Gender   string  `json:"gender"`
}

// BMI returns weight / height². Zero means "unavailable" and is returned when
// either measurement is non-positive.
func (p UserProfile) BMI() float64 {
	if p.HeightM <= 0 || p.WeightKg <= 0 {
		return 0
	}
	return p.WeightKg / (p.HeightM * p.HeightM)
}
