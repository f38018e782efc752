package matcher_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/lostandfound/lostandfound/internal/matcher"
	"github.com/lostandfound/lostandfound/internal/model"
	"github.com/stretchr/testify/assert"
)

func item(id string, status model.Status, category, secret string) *model.Item {
	return &model.Item{
		Base:          model.Base{ID: id},
		UserID:        "user-" + id,
		Status:        status,
		Category:      category,
		SecretDetails: secret,
	}
}

func TestFind(t *testing.T) {
	found := item("F1", model.StatusFound, "Phone", "Blue Case")

	t.Run("match", func(t *testing.T) {
		pool := []*model.Item{item("L1", model.StatusLost, "Phone", "blue case")}
		m := matcher.Find(found, pool)
		if assert.NotNil(t, m) {
			assert.Equal(t, "L1", m.ID)
		}
	})

	t.Run("secret mismatch", func(t *testing.T) {
		pool := []*model.Item{item("L1", model.StatusLost, "Phone", "red case")}
		assert.Nil(t, matcher.Find(found, pool))
	})

	t.Run("empty pool", func(t *testing.T) {
		assert.Nil(t, matcher.Find(found, nil))
		assert.Nil(t, matcher.Find(found, []*model.Item{}))
	})

	t.Run("found items are never matched", func(t *testing.T) {
		pool := []*model.Item{item("F0", model.StatusFound, "Phone", "blue case")}
		assert.Nil(t, matcher.Find(found, pool))
	})

	t.Run("candidate itself is excluded", func(t *testing.T) {
		self := item("F1", model.StatusLost, "Phone", "blue case")
		assert.Nil(t, matcher.Find(found, []*model.Item{self}))
	})

	t.Run("category is case sensitive", func(t *testing.T) {
		keys := item("F2", model.StatusFound, "Keys", "ABC")
		assert.NotNil(t, matcher.Find(keys, []*model.Item{item("L1", model.StatusLost, "Keys", "abc")}))
		assert.Nil(t, matcher.Find(keys, []*model.Item{item("L1", model.StatusLost, "keys", "abc")}))
	})

	t.Run("first match wins", func(t *testing.T) {
		pool := []*model.Item{
			item("L0", model.StatusLost, "Wallet", "blue case"),
			item("L1", model.StatusLost, "Phone", "BLUE CASE"),
			item("L2", model.StatusLost, "Phone", "blue case"),
		}
		assert.Equal(t, "L1", matcher.Find(found, pool).ID)

		pool[1], pool[2] = pool[2], pool[1]
		assert.Equal(t, "L2", matcher.Find(found, pool).ID)
	})

	t.Run("blank secrets match", func(t *testing.T) {
		blank := item("F3", model.StatusFound, "Umbrella", "")
		m := matcher.Find(blank, []*model.Item{item("L3", model.StatusLost, "Umbrella", "")})
		if assert.NotNil(t, m) {
			assert.Equal(t, "L3", m.ID)
		}
	})

	t.Run("malformed entries are skipped", func(t *testing.T) {
		pool := []*model.Item{
			nil,
			item("X1", model.Status("STOLEN"), "Phone", "blue case"),
			item("L1", model.StatusLost, "Phone", "blue case"),
		}
		assert.Equal(t, "L1", matcher.Find(found, pool).ID)
		assert.Nil(t, matcher.Find(nil, pool))
	})
}

func TestIndexAgreesWithScan(t *testing.T) {
	categories := []string{"Keys", "keys", "Phone", "Wallet"}
	secrets := []string{"", "abc", "ABC", "blue case", "Blue Case", "red"}
	statuses := []model.Status{model.StatusLost, model.StatusFound}

	rng := rand.New(rand.NewSource(42))
	random := func(id string) *model.Item {
		return item(id,
			statuses[rng.Intn(len(statuses))],
			categories[rng.Intn(len(categories))],
			secrets[rng.Intn(len(secrets))],
		)
	}

	for round := 0; round < 200; round++ {
		pool := make([]*model.Item, rng.Intn(20))
		for i := range pool {
			pool[i] = random(fmt.Sprintf("I%d", i))
		}

		candidate := random("C")
		candidate.Status = model.StatusFound
		if len(pool) > 0 && rng.Intn(4) == 0 {
			// Same id as a pool entry, as when the store returns the new item itself.
			candidate.ID = pool[rng.Intn(len(pool))].ID
		}

		assert.Equal(t, matcher.Find(candidate, pool), matcher.NewIndex(pool).Find(candidate), "round %d", round)
	}
}

func TestIndex(t *testing.T) {
	pool := []*model.Item{
		item("L1", model.StatusLost, "Phone", "blue case"),
		item("F1", model.StatusFound, "Phone", "blue case"),
		nil,
		item("L2", model.StatusLost, "Phone", "Blue Case"),
	}

	idx := matcher.NewIndex(pool)
	assert.Equal(t, 2, idx.Len())

	candidate := item("L1", model.StatusFound, "Phone", "BLUE CASE")
	assert.Equal(t, "L2", idx.Find(candidate).ID)
	assert.Nil(t, idx.Find(nil))
}

func TestNew(t *testing.T) {
	pool := []*model.Item{item("L1", model.StatusLost, "Keys", "ring")}
	candidate := item("F1", model.StatusFound, "Keys", "RING")

	for _, strategy := range []string{"", matcher.StrategyScan, matcher.StrategyIndex} {
		f, err := matcher.New(strategy)
		assert.NoError(t, err)
		assert.Equal(t, "L1", f.Find(candidate, pool).ID, strategy)
	}

	_, err := matcher.New("fuzzy")
	assert.EqualError(t, err, "unknown match strategy: fuzzy")
}
