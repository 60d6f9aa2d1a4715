package masterdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	centers []CostCenter
	nextID  int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1}
}

func (m *memoryRepo) List(_ context.Context) ([]CostCenter, error) {
	out := make([]CostCenter, len(m.centers))
	copy(out, m.centers)
	return out, nil
}

func (m *memoryRepo) ListActive(_ context.Context) ([]CostCenter, error) {
	var out []CostCenter
	for _, c := range m.centers {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (CostCenter, error) {
	for _, c := range m.centers {
		if c.ID == id {
			return c, nil
		}
	}
	return CostCenter{}, ErrNotFound
}

func (m *memoryRepo) Count(_ context.Context) (int, error) {
	return len(m.centers), nil
}

func (m *memoryRepo) Insert(_ context.Context, center CostCenter) (CostCenter, error) {
	for _, c := range m.centers {
		if c.Name == center.Name {
			return CostCenter{}, ErrDuplicateName
		}
	}
	center.ID = m.nextID
	m.nextID++
	m.centers = append(m.centers, center)
	return center, nil
}

func TestSeedInsertsDefaultCatalogue(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	seeded, err := svc.Seed(context.Background())
	require.NoError(t, err)
	require.Len(t, seeded, len(DefaultCostCenters))

	centers, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, centers, 7)
	require.Equal(t, "Mango", centers[0].Name)
	require.Equal(t, CategoryOverhead, centers[6].Category)
}

func TestSeedIsOnceOnly(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	_, err := svc.Seed(context.Background())
	require.NoError(t, err)

	_, err = svc.Seed(context.Background())
	require.ErrorIs(t, err, ErrAlreadySeeded)
}

func TestEnsureSeededIsIdempotent(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)

	require.NoError(t, svc.EnsureSeeded(context.Background()))
	require.NoError(t, svc.EnsureSeeded(context.Background()))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, len(DefaultCostCenters), count)
}

func TestExists(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	require.NoError(t, svc.EnsureSeeded(context.Background()))

	ok, err := svc.Exists(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.Exists(context.Background(), 99)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFindByNameIsCaseInsensitive(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	require.NoError(t, svc.EnsureSeeded(context.Background()))

	center, err := svc.FindByName(context.Background(), "poultry")
	require.NoError(t, err)
	require.Equal(t, "Poultry", center.Name)

	_, err = svc.FindByName(context.Background(), "Barley")
	require.ErrorIs(t, err, ErrNotFound)
}
