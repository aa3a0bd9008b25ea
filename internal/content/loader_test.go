package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawprintgames/gachapet/internal/domain"
)

func TestLoad_EmbeddedDefaultsAreValid(t *testing.T) {
	tables, err := Load("")

	require.NoError(t, err)
	assert.NotEmpty(t, tables.Roster)
	assert.Len(t, tables.DailyQuests, domain.DailyQuestCount)
	assert.Len(t, tables.WeeklyQuests, domain.WeeklyQuestCount)
	for _, g := range domain.GradeOrder {
		_, ok := tables.Grades[g]
		assert.True(t, ok, "Grade %s must be configured", g)
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load("/nonexistent/content.json")

	assert.Error(t, err)
}

func TestValidate_RejectsMissingGrade(t *testing.T) {
	tables, err := Load("")
	require.NoError(t, err)
	delete(tables.Grades, domain.GradeLegendary)

	err = Validate(tables)

	assert.Error(t, err)
}

func TestValidate_RejectsDanglingSkinReference(t *testing.T) {
	tables, err := Load("")
	require.NoError(t, err)
	tables.ShopItems = append(tables.ShopItems, ShopItemDef{
		Key: "skin_ghost", CostMedals: 1, WeeklyLimit: 1, SkinID: "skin_nonexistent",
	})

	err = Validate(tables)

	assert.Error(t, err)
}

func TestGrade_UnknownFallsBackToNormal(t *testing.T) {
	tables, err := Load("")
	require.NoError(t, err)

	cfg := tables.Grade(domain.Grade("mythic"))

	assert.Equal(t, tables.Grades[domain.GradeNormal], cfg)
}

func TestAttendanceReward_WrapsPastLadderEnd(t *testing.T) {
	tables, err := Load("")
	require.NoError(t, err)
	ladder := len(tables.Attendance)

	assert.Equal(t, tables.Attendance[0], tables.AttendanceReward(1))
	assert.Equal(t, tables.Attendance[ladder-1], tables.AttendanceReward(ladder))
	assert.Equal(t, tables.Attendance[0], tables.AttendanceReward(ladder+1))
}

func TestCharactersByGrade_PartitionsRoster(t *testing.T) {
	tables, err := Load("")
	require.NoError(t, err)

	pools := tables.CharactersByGrade()

	total := 0
	for grade, pool := range pools {
		total += len(pool)
		for _, c := range pool {
			assert.Equal(t, grade, c.Grade)
		}
	}
	assert.Equal(t, len(tables.Roster), total)
}
