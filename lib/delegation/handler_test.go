package delegationhandler

import (
	"testing"
	"time"

	employeeapimodels "event-tracker-backend/models/api/employee"
	dbmodels "event-tracker-backend/models/db"

	"github.com/stretchr/testify/require"
)

type fakeEmployeeStore struct {
	records map[string]*dbmodels.Employee
}

func newFakeEmployeeStore(records ...*dbmodels.Employee) *fakeEmployeeStore {
	store := &fakeEmployeeStore{records: map[string]*dbmodels.Employee{}}
	for _, rec := range records {
		store.records[rec.ID] = rec
	}
	return store
}

func (f *fakeEmployeeStore) Create(rec dbmodels.Employee) (string, error) {
	f.records[rec.ID] = &rec
	return rec.ID, nil
}

func (f *fakeEmployeeStore) GetByID(id string) (*dbmodels.Employee, error) {
	rec, exist := f.records[id]
	if !exist {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeEmployeeStore) Update(id string, updMap map[string]interface{}) error {
	rec, exist := f.records[id]
	if !exist {
		return nil
	}
	if v, ok := updMap["delegate_to_id"]; ok {
		if v == nil {
			rec.DelegateToID = nil
		} else {
			id := v.(string)
			rec.DelegateToID = &id
		}
	}
	if v, ok := updMap["delegate_until"]; ok {
		if v == nil {
			rec.DelegateUntil = nil
		} else {
			until := v.(time.Time)
			rec.DelegateUntil = &until
		}
	}
	return nil
}

func (f *fakeEmployeeStore) List() ([]dbmodels.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeStore) ListByDepartment(departmentID, excludeID string) ([]dbmodels.Employee, error) {
	list := []dbmodels.Employee{}
	for _, rec := range f.records {
		if rec.ID == excludeID || rec.DepartmentID == nil || *rec.DepartmentID != departmentID {
			continue
		}
		list = append(list, *rec)
	}
	return list, nil
}

func (f *fakeEmployeeStore) FindDelegators(delegateToID string, today time.Time) ([]dbmodels.Employee, error) {
	list := []dbmodels.Employee{}
	for _, rec := range f.records {
		if rec.DelegateToID != nil && *rec.DelegateToID == delegateToID && rec.HasActiveDelegation(today) {
			list = append(list, *rec)
		}
	}
	return list, nil
}

func employee(id, departmentID string) *dbmodels.Employee {
	rec := dbmodels.Employee{DepartmentID: &departmentID}
	rec.ID = id
	return &rec
}

func delegated(id, departmentID, delegateToID string, until time.Time) *dbmodels.Employee {
	rec := employee(id, departmentID)
	rec.DelegateToID = &delegateToID
	date := dbmodels.ToDate(until)
	rec.DelegateUntil = &date
	return rec
}

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func newTestHandler(store *fakeEmployeeStore) impl {
	return impl{
		store: store,
		now:   func() time.Time { return testNow },
	}
}

func TestDelegationSet(t *testing.T) {
	t.Run(`set delegation check`, func(t *testing.T) {
		store := newFakeEmployeeStore(employee("emp-a", "dep-1"), employee("emp-b", "dep-1"))
		h := newTestHandler(store)
		hMsg, err := h.Set("emp-a", employeeapimodels.DelegationData{
			DelegateToID:  "emp-b",
			DelegateUntil: "2026-09-15",
		})
		require.Nil(t, err)
		require.Equal(t, "", hMsg)
		rec, _ := store.GetByID("emp-a")
		require.NotNil(t, rec.DelegateToID)
		require.Equal(t, "emp-b", *rec.DelegateToID)
		require.Equal(t, true, rec.HasActiveDelegation(testNow))
	})

	t.Run(`self delegation rejected check`, func(t *testing.T) {
		store := newFakeEmployeeStore(employee("emp-a", "dep-1"))
		h := newTestHandler(store)
		hMsg, err := h.Set("emp-a", employeeapimodels.DelegationData{
			DelegateToID:  "emp-a",
			DelegateUntil: "2026-09-15",
		})
		require.Nil(t, err)
		require.NotEqual(t, "", hMsg)
	})

	t.Run(`cross department rejected check`, func(t *testing.T) {
		store := newFakeEmployeeStore(employee("emp-a", "dep-1"), employee("emp-b", "dep-2"))
		h := newTestHandler(store)
		hMsg, err := h.Set("emp-a", employeeapimodels.DelegationData{
			DelegateToID:  "emp-b",
			DelegateUntil: "2026-09-15",
		})
		require.Nil(t, err)
		require.NotEqual(t, "", hMsg)
	})

	t.Run(`past date rejected check`, func(t *testing.T) {
		store := newFakeEmployeeStore(employee("emp-a", "dep-1"), employee("emp-b", "dep-1"))
		h := newTestHandler(store)
		hMsg, err := h.Set("emp-a", employeeapimodels.DelegationData{
			DelegateToID:  "emp-b",
			DelegateUntil: "2026-08-29",
		})
		require.Nil(t, err)
		require.NotEqual(t, "", hMsg)
	})

	t.Run(`today is valid until date check`, func(t *testing.T) {
		store := newFakeEmployeeStore(employee("emp-a", "dep-1"), employee("emp-b", "dep-1"))
		h := newTestHandler(store)
		hMsg, err := h.Set("emp-a", employeeapimodels.DelegationData{
			DelegateToID:  "emp-b",
			DelegateUntil: "2026-08-30",
		})
		require.Nil(t, err)
		require.Equal(t, "", hMsg)
	})

	t.Run(`unknown delegate rejected check`, func(t *testing.T) {
		store := newFakeEmployeeStore(employee("emp-a", "dep-1"))
		h := newTestHandler(store)
		hMsg, err := h.Set("emp-a", employeeapimodels.DelegationData{
			DelegateToID:  "emp-x",
			DelegateUntil: "2026-09-15",
		})
		require.Nil(t, err)
		require.NotEqual(t, "", hMsg)
	})
}

func TestDelegationSweep(t *testing.T) {
	t.Run(`expired delegation cleared check`, func(t *testing.T) {
		expired := delegated("emp-a", "dep-1", "emp-b", testNow.AddDate(0, 0, -1))
		store := newFakeEmployeeStore(expired, employee("emp-b", "dep-1"))
		h := newTestHandler(store)
		rec, _ := store.GetByID("emp-a")
		err := h.Sweep(rec)
		require.Nil(t, err)
		require.Nil(t, rec.DelegateToID)
		require.Nil(t, rec.DelegateUntil)
		stored, _ := store.GetByID("emp-a")
		require.Nil(t, stored.DelegateToID)
	})

	t.Run(`active delegation untouched check`, func(t *testing.T) {
		active := delegated("emp-a", "dep-1", "emp-b", testNow.AddDate(0, 0, 5))
		store := newFakeEmployeeStore(active, employee("emp-b", "dep-1"))
		h := newTestHandler(store)
		rec, _ := store.GetByID("emp-a")
		err := h.Sweep(rec)
		require.Nil(t, err)
		require.NotNil(t, rec.DelegateToID)
	})
}

func TestDelegationResolve(t *testing.T) {
	t.Run(`no delegation resolves to self check`, func(t *testing.T) {
		store := newFakeEmployeeStore(employee("emp-a", "dep-1"))
		h := newTestHandler(store)
		rec, err := h.Resolve("emp-a")
		require.Nil(t, err)
		require.NotNil(t, rec)
		require.Equal(t, "emp-a", rec.ID)
	})

	t.Run(`chain resolves to last delegate check`, func(t *testing.T) {
		until := testNow.AddDate(0, 0, 3)
		store := newFakeEmployeeStore(
			delegated("emp-a", "dep-1", "emp-b", until),
			delegated("emp-b", "dep-1", "emp-c", until),
			employee("emp-c", "dep-1"),
		)
		h := newTestHandler(store)
		rec, err := h.Resolve("emp-a")
		require.Nil(t, err)
		require.NotNil(t, rec)
		require.Equal(t, "emp-c", rec.ID)
	})

	t.Run(`expired hop stops chain check`, func(t *testing.T) {
		store := newFakeEmployeeStore(
			delegated("emp-a", "dep-1", "emp-b", testNow.AddDate(0, 0, 3)),
			delegated("emp-b", "dep-1", "emp-c", testNow.AddDate(0, 0, -2)),
			employee("emp-c", "dep-1"),
		)
		h := newTestHandler(store)
		rec, err := h.Resolve("emp-a")
		require.Nil(t, err)
		require.NotNil(t, rec)
		require.Equal(t, "emp-b", rec.ID)
	})

	t.Run(`cycle stops on visited check`, func(t *testing.T) {
		until := testNow.AddDate(0, 0, 3)
		store := newFakeEmployeeStore(
			delegated("emp-a", "dep-1", "emp-b", until),
			delegated("emp-b", "dep-1", "emp-a", until),
		)
		h := newTestHandler(store)
		rec, err := h.Resolve("emp-a")
		require.Nil(t, err)
		require.NotNil(t, rec)
		require.Equal(t, "emp-a", rec.ID)
	})
}

func TestDelegationFreeze(t *testing.T) {
	t.Run(`frozen while delegation active check`, func(t *testing.T) {
		store := newFakeEmployeeStore(
			delegated("emp-a", "dep-1", "emp-b", testNow.AddDate(0, 0, 3)),
			employee("emp-b", "dep-1"),
		)
		h := newTestHandler(store)
		rec, frozen, err := h.IsFrozen("emp-a")
		require.Nil(t, err)
		require.NotNil(t, rec)
		require.Equal(t, true, frozen)
	})

	t.Run(`unfrozen after expiry check`, func(t *testing.T) {
		store := newFakeEmployeeStore(
			delegated("emp-a", "dep-1", "emp-b", testNow.AddDate(0, 0, -1)),
			employee("emp-b", "dep-1"),
		)
		h := newTestHandler(store)
		rec, frozen, err := h.IsFrozen("emp-a")
		require.Nil(t, err)
		require.NotNil(t, rec)
		require.Equal(t, false, frozen)
	})
}
