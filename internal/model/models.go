package model

// All lists every table in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&SkillCategory{},
		&Skill{},
		&ExchangeRequest{},
		&Message{},
		&Rating{},
		&Notification{},
	}
}
