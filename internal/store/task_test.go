package store

import (
	"errors"
	"testing"

	"gorm.io/gorm"
)

func TestCreateTask(t *testing.T) {
	st := openTestStore(t)
	uid := seedUser(t, st, "alice")

	at := "14:30"
	task, err := st.CreateTask(uid, "clean desk", &at)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if task.ID == 0 {
		t.Error("task id not assigned")
	}
	if task.Time == nil || *task.Time != "14:30" {
		t.Errorf("time = %v, want 14:30", task.Time)
	}
}

func TestCreateTask_EmptyText(t *testing.T) {
	st := openTestStore(t)
	uid := seedUser(t, st, "alice")

	if _, err := st.CreateTask(uid, "", nil); err == nil {
		t.Error("empty task text accepted")
	}
}

func TestTasks_ScopedToUser(t *testing.T) {
	st := openTestStore(t)
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")

	if _, err := st.CreateTask(alice, "mine", nil); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := st.CreateTask(bob, "theirs", nil); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	tasks, err := st.Tasks(alice)
	if err != nil {
		t.Fatalf("Tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Text != "mine" {
		t.Errorf("tasks = %+v, want only alice's", tasks)
	}
}

func TestUpdateTask(t *testing.T) {
	st := openTestStore(t)
	uid := seedUser(t, st, "alice")
	task, _ := st.CreateTask(uid, "old", nil)

	at := "09:00"
	if err := st.UpdateTask(task.ID, uid, "new", &at); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	tasks, _ := st.Tasks(uid)
	if tasks[0].Text != "new" {
		t.Errorf("text = %q, want new", tasks[0].Text)
	}
	if tasks[0].Time == nil || *tasks[0].Time != "09:00" {
		t.Errorf("time = %v, want 09:00", tasks[0].Time)
	}
}

func TestUpdateTask_ClearsTime(t *testing.T) {
	st := openTestStore(t)
	uid := seedUser(t, st, "alice")
	at := "14:30"
	task, _ := st.CreateTask(uid, "x", &at)

	if err := st.UpdateTask(task.ID, uid, "x", nil); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	tasks, _ := st.Tasks(uid)
	if tasks[0].Time != nil {
		t.Errorf("time = %v, want nil", tasks[0].Time)
	}
}

func TestUpdateTask_WrongOwner(t *testing.T) {
	st := openTestStore(t)
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")
	task, _ := st.CreateTask(alice, "x", nil)

	err := st.UpdateTask(task.ID, bob, "hijack", nil)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
	tasks, _ := st.Tasks(alice)
	if tasks[0].Text != "x" {
		t.Errorf("text changed to %q", tasks[0].Text)
	}
}

func TestDeleteTask(t *testing.T) {
	st := openTestStore(t)
	uid := seedUser(t, st, "alice")
	task, _ := st.CreateTask(uid, "x", nil)

	if err := st.DeleteTask(task.ID, uid); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	tasks, _ := st.Tasks(uid)
	if len(tasks) != 0 {
		t.Errorf("tasks = %+v, want empty", tasks)
	}
}

func TestDeleteTask_Nonexistent(t *testing.T) {
	st := openTestStore(t)
	uid := seedUser(t, st, "alice")

	err := st.DeleteTask(999, uid)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("err = %v, want not found", err)
	}
}
