package linkedin_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/SACCSF/linkedin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityKey(t *testing.T) {
	t.Parallel()

	t.Run("is case and whitespace insensitive", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, linkedin.EntityKey("Acme Corp"), linkedin.EntityKey("acme corp "))
		assert.Equal(t, "acme corp", linkedin.EntityKey("  ACME\t\nCorp"))
	})

	t.Run("folds compatibility forms", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, linkedin.EntityKey("Ａｃｍｅ"), linkedin.EntityKey("acme"))
	})

	t.Run("empty name yields empty key", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, linkedin.EntityKey("   "))
	})
}

func TestParseMergePolicy(t *testing.T) {
	t.Parallel()

	p, err := linkedin.ParseMergePolicy("")
	require.NoError(t, err)
	assert.Equal(t, linkedin.MergeLastWriteWins, p)

	p, err = linkedin.ParseMergePolicy("fill")
	require.NoError(t, err)
	assert.Equal(t, linkedin.MergeFieldFill, p)

	_, err = linkedin.ParseMergePolicy("newest")
	assert.Equal(t, linkedin.EINVALID, linkedin.ErrorCode(err))
}

func TestCollection_Merge(t *testing.T) {
	t.Parallel()

	first := linkedin.Company{Name: "Acme Corp", Industry: "Software", Specialities: []string{}}
	second := linkedin.Company{Name: "Acme Corp ", Size: "50-100", EmployeeCountStart: 50, EmployeeCountEnd: 100, Specialities: []string{}}

	t.Run("last write wins by default", func(t *testing.T) {
		t.Parallel()

		c := linkedin.NewCollection[linkedin.Company]("")

		res, err := c.Merge(linkedin.EntityKey(first.Name), first)
		require.NoError(t, err)
		assert.Equal(t, linkedin.MergeInserted, res)

		res, err = c.Merge(linkedin.EntityKey(second.Name), second)
		require.NoError(t, err)
		assert.Equal(t, linkedin.MergeReplaced, res)

		require.Equal(t, 1, c.Len())
		got, ok := c.Get("acme corp")
		require.True(t, ok)
		assert.Empty(t, got.Industry)
		assert.Equal(t, "50-100", got.Size)
	})

	t.Run("first write wins keeps the stored record", func(t *testing.T) {
		t.Parallel()

		c := linkedin.NewCollection[linkedin.Company](linkedin.MergeFirstWriteWins)
		_, _ = c.Merge("acme corp", first)

		res, err := c.Merge("acme corp", second)
		require.NoError(t, err)

		assert.Equal(t, linkedin.MergeKept, res)
		got, _ := c.Get("acme corp")
		assert.Equal(t, "Software", got.Industry)
		assert.Empty(t, got.Size)
	})

	t.Run("field fill keeps newer values and fills gaps", func(t *testing.T) {
		t.Parallel()

		c := linkedin.NewCollection[linkedin.Company](linkedin.MergeFieldFill)
		_, _ = c.Merge("acme corp", first)

		res, err := c.Merge("acme corp", second)
		require.NoError(t, err)

		assert.Equal(t, linkedin.MergeFilled, res)
		got, _ := c.Get("acme corp")
		assert.Equal(t, "Software", got.Industry)
		assert.Equal(t, "50-100", got.Size)
		assert.Equal(t, "Acme Corp ", got.Name)
	})

	t.Run("rejects empty keys", func(t *testing.T) {
		t.Parallel()

		c := linkedin.NewCollection[linkedin.Company]("")

		_, err := c.Merge("", first)

		assert.Equal(t, linkedin.EINVALID, linkedin.ErrorCode(err))
		assert.Zero(t, c.Len())
	})

	t.Run("keys keep first insertion order", func(t *testing.T) {
		t.Parallel()

		c := linkedin.NewCollection[linkedin.Company]("")
		_, _ = c.Merge("b", linkedin.Company{Name: "B"})
		_, _ = c.Merge("a", linkedin.Company{Name: "A"})
		_, _ = c.Merge("b", linkedin.Company{Name: "B2"})

		assert.Equal(t, []string{"b", "a"}, c.Keys())

		var names []string
		for _, rec := range c.All() {
			names = append(names, rec.Name)
		}
		assert.Equal(t, []string{"B2", "A"}, names)
	})
}

func TestCollection_MarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("empty collection is an empty object", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(linkedin.NewCollection[linkedin.Company](""))

		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(data))
	})

	t.Run("serializes keys in insertion order with every field present", func(t *testing.T) {
		t.Parallel()

		c := linkedin.NewCollection[linkedin.Company]("")
		_, _ = c.Merge("zeta", linkedin.NormalizeCompany(rawCompany(map[string]string{linkedin.CompanyName: "Zeta"})))
		_, _ = c.Merge("alpha", linkedin.NormalizeCompany(rawCompany(map[string]string{linkedin.CompanyName: "Alpha"})))

		data, err := c.MarshalJSON()
		require.NoError(t, err)

		s := string(data)
		assert.Less(t, strings.Index(s, `"zeta"`), strings.Index(s, `"alpha"`))
		assert.Contains(t, s, `"specialities":[]`)
		assert.Contains(t, s, `"followerCount":0`)
		assert.NotContains(t, s, "null")
	})

	t.Run("round-trips through JSON", func(t *testing.T) {
		t.Parallel()

		c := linkedin.NewCollection[linkedin.Person]("")
		_, _ = c.Merge("jane doe", linkedin.Person{
			Name:       "Jane Doe",
			Education:  []linkedin.Education{{School: "ETH", StartYear: 2010}},
			Experience: []linkedin.Experience{},
		})
		_, _ = c.Merge("bob", linkedin.Person{Name: "Bob", Education: []linkedin.Education{}, Experience: []linkedin.Experience{}})

		data, err := json.Marshal(c)
		require.NoError(t, err)

		loaded := linkedin.NewCollection[linkedin.Person]("")
		require.NoError(t, json.Unmarshal(data, loaded))

		assert.Equal(t, c.Keys(), loaded.Keys())
		for key, rec := range c.All() {
			got, ok := loaded.Get(key)
			require.True(t, ok)
			assert.Equal(t, rec, got)
		}
	})
}

func TestCollection_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("fills defaults for fields missing in older documents", func(t *testing.T) {
		t.Parallel()

		c := linkedin.NewCollection[linkedin.Person]("")
		require.NoError(t, json.Unmarshal([]byte(`{"jane doe":{"name":"Jane Doe"}}`), c))

		got, ok := c.Get("jane doe")
		require.True(t, ok)
		assert.NotNil(t, got.Education)
		assert.NotNil(t, got.Experience)
	})

	t.Run("rejects non-object documents", func(t *testing.T) {
		t.Parallel()

		c := linkedin.NewCollection[linkedin.Person]("")
		err := c.UnmarshalJSON([]byte(`[1,2]`))

		assert.Equal(t, linkedin.EINVALID, linkedin.ErrorCode(err))
	})
}
