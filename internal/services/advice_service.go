package services

import (
	"fmt"
	"math/rand"

	"github.com/debtwatch/backend/internal/config"
	"github.com/debtwatch/backend/internal/models"
)

// AdviceService turns report figures into recommendation cards: contextual
// alerts first, padded with shuffled general tips up to three cards.
type AdviceService struct {
	cfg     *config.TrackerConfig
	shuffle func([]models.AdviceCard)
}

func NewAdviceService(cfg *config.TrackerConfig) *AdviceService {
	return &AdviceService{
		cfg: cfg,
		shuffle: func(cards []models.AdviceCard) {
			rand.Shuffle(len(cards), func(i, j int) {
				cards[i], cards[j] = cards[j], cards[i]
			})
		},
	}
}

var generalAdvicePool = []models.AdviceCard{
	{ID: "rule503020", Title: "Правило 50/30/20", Text: "50% дохода — на жизнь, 30% — на желания, 20% — на долги и накопления."},
	{ID: "snowball", Title: "Метод снежного кома", Text: "Закрывайте сначала самые мелкие долги: психологическая победа важнее математики."},
	{ID: "pause", Title: "Пауза 24 часа", Text: "Перед необязательной покупкой подождите сутки. Чаще всего желание проходит."},
	{ID: "tracking", Title: "Сила учета", Text: "Регулярный просмотр графика долга сам по себе дисциплинирует обе стороны."},
	{ID: "inflation", Title: "Помните про инфляцию", Text: "Деньги сегодня дороже, чем деньги завтра. Возвращать долг сейчас дешевле."},
	{ID: "small_leaks", Title: "Мелкие займы", Text: "Займы до 500 незаметно складываются в крупные суммы. Следите за ними."},
}

// Advise ranks contextual alerts ahead of the general pool and returns the
// top three cards.
func (as *AdviceService) Advise(report models.Report) []models.AdviceCard {
	var cards []models.AdviceCard

	if report.Totals.CurrentDebt.GreaterThan(as.cfg.SafetyLimit) {
		cards = append(cards, models.AdviceCard{
			ID:    "limit_breach",
			Title: "Критический уровень",
			Text:  fmt.Sprintf("Долг превысил лимит %s. Стоит обсудить план постепенного погашения.", as.cfg.SafetyLimit.StringFixed(0)),
		})
	}
	if !report.Totals.CurrentDebt.IsPositive() {
		cards = append(cards, models.AdviceCard{
			ID:    "debt_cleared",
			Title: "Долгов нет",
			Text:  "Баланс закрыт. Хороший момент зафиксировать договоренности на будущее.",
		})
	}

	switch report.Trend {
	case models.TrendGrowing:
		cards = append(cards, models.AdviceCard{
			ID:    "stop_growth",
			Title: "Долг растет",
			Text:  "Чистый долг увеличивается от месяца к месяцу. Попробуйте неделю без новых займов.",
		})
	case models.TrendDecreasing:
		cards = append(cards, models.AdviceCard{
			ID:    "keep_going",
			Title: "Верное направление",
			Text:  "Долг стабильно падает. Регулярные небольшие возвраты лучше одного крупного.",
		})
	}

	general := make([]models.AdviceCard, len(generalAdvicePool))
	copy(general, generalAdvicePool)
	as.shuffle(general)

	cards = append(cards, general...)
	if len(cards) > 3 {
		cards = cards[:3]
	}
	return cards
}
