package compliance

import (
	"github.com/GauravPandit27/construction-saftey/pkg/models"
)

// ScoreFunc вычисляет оценку соответствия детекции СИЗ конкретному человеку.
// Каждая категория использует свою геометрическую эвристику
// (доля вложенности для касок и масок, IoU для жилетов)
type ScoreFunc func(item, person models.Box) float64

// Matcher обобщенный сопоставитель детекций одной категории с людьми.
// Логика сопоставления одинакова для всех категорий, различаются только
// оценочная функция и порог
type Matcher struct {
	score     ScoreFunc
	threshold float64
}

// NewMatcher создает новый Matcher с заданной оценочной функцией и порогом
func NewMatcher(score ScoreFunc, threshold float64) *Matcher {
	return &Matcher{
		score:     score,
		threshold: threshold,
	}
}

// assignment назначенная человеку детекция с ее оценкой
type assignment struct {
	detIndex int
	score    float64
}

// Match сопоставляет детекции с людьми. Возвращает для каждого человека
// (по его ID) индекс назначенной детекции или -1, а также количество детекций,
// оставшихся без назначения.
//
// Правила: кандидатом считается человек с оценкой не ниже порога (граница
// включается). Детекция назначается кандидату с максимальной оценкой, при
// равенстве оценок выбирается человек с меньшим ID. Каждый человек получает
// не более одной детекции — с максимальной оценкой; вытесненная или проигравшая
// детекция остается без назначения и другому человеку не передается
func (m *Matcher) Match(persons []*Person, detections []models.Detection) ([]int, int) {
	assigned := make([]int, len(persons))
	for i := range assigned {
		assigned[i] = -1
	}

	best := make(map[int]assignment, len(persons))
	unmatched := 0

	for di, det := range detections {
		bestPerson := -1
		bestScore := 0.0

		// Люди перебираются в порядке возрастания ID, поэтому при равных
		// оценках первым фиксируется человек с меньшим ID
		for _, person := range persons {
			s := m.score(det.Box, person.Box)
			if s < m.threshold {
				continue
			}
			if bestPerson == -1 || s > bestScore {
				bestPerson = person.ID
				bestScore = s
			}
		}

		if bestPerson == -1 {
			unmatched++
			continue
		}

		if current, ok := best[bestPerson]; ok {
			if current.score >= bestScore {
				// У человека уже есть детекция с не меньшей оценкой
				unmatched++
				continue
			}
			// Вытесняем прежнюю детекцию, она остается без назначения
			unmatched++
		}

		best[bestPerson] = assignment{detIndex: di, score: bestScore}
	}

	for personID, a := range best {
		assigned[personID] = a.detIndex
	}

	return assigned, unmatched
}
