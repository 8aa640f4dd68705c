package content

// Defaults returns the seeded catalog shown when the Content Store cannot be reached
// and no confirmed copy has been loaded yet.
func Defaults() Content {
	return Content{
		Contacts: Contact{
			Address: "г. Красноярск, о. Отдыха, 12",
			Phone:   "+7 (391) 123-45-67",
			Email:   "info@sportshall.ru",
			Hours:   "Пн-Пт: 08:00 - 22:00, Сб-Вс: 09:00 - 21:00",
		},
		Sports: []Sport{
			{
				ID:   "basketball",
				Name: "Баскетбол",
				Rules: []string{
					"Игра состоит из 4 периодов по 10 минут",
					"Цель - забросить мяч в кольцо соперника",
					"За бросок из-за 3-х очковой линии начисляется 3 очка",
					"Запрещены пробежки и двойное ведение",
					"Команда состоит из 5 игроков на площадке",
				},
				Safety: []string{
					"Используйте спортивную обувь с нескользящей подошвой",
					"Снимите все украшения перед игрой",
					"Разминайтесь перед началом игры",
					"Соблюдайте правила игры и не допускайте грубых столкновений",
					"При получении травмы немедленно обратитесь к медперсоналу",
				},
			},
			{
				ID:   "handball",
				Name: "Гандбол",
				Rules: []string{
					"Игра состоит из 2 таймов по 30 минут",
					"Цель - забросить мяч в ворота соперника",
					"Команда состоит из 7 игроков (6 полевых + вратарь)",
					"Можно делать максимум 3 шага с мячом",
					"Запрещено входить в зону вратаря",
				},
				Safety: []string{
					"Используйте защитные наколенники и налокотники",
					"Обязательна спортивная обувь",
					"Вратарь должен использовать специальную защиту",
					"Разминка перед игрой обязательна",
					"Соблюдайте дистанцию при бросках",
				},
			},
			{
				ID:   "futsal",
				Name: "Мини-футбол",
				Rules: []string{
					"Игра состоит из 2 таймов по 20 минут",
					"Команда состоит из 5 игроков (4 полевых + вратарь)",
					"Цель - забить мяч в ворота соперника",
					"Замены игроков неограниченны",
					"Запрещены подкаты и грубая игра",
				},
				Safety: []string{
					"Используйте щитки для защиты голени",
					"Обувь должна быть специальной для зала",
					"Разминка обязательна",
					"Не играйте в мокрой обуви",
					"Соблюдайте правила честной игры",
				},
			},
		},
	}
}
