package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y, Z float64
}

type testLabelComponent struct {
	Text string
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if em.EntityCount() != 2 {
		t.Errorf("EntityCount = %d, want 2", em.EntityCount())
	}
}

func TestExists(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if em.Exists(NoEntity) {
		t.Error("NoEntity should never exist")
	}
	if !em.Exists(id) {
		t.Error("created entity should exist")
	}

	// 延迟删除：清理前仍存在
	em.DestroyEntity(id)
	if !em.Exists(id) {
		t.Error("entity should exist until RemoveMarkedEntities")
	}
	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("entity should be gone after RemoveMarkedEntities")
	}

	// 立即删除
	id2 := em.CreateEntity()
	em.DestroyEntityNow(id2)
	if em.Exists(id2) {
		t.Error("entity should be gone after DestroyEntityNow")
	}

	// ID 不复用
	id3 := em.CreateEntity()
	if id3 == id || id3 == id2 {
		t.Errorf("entity ID %d was reused", id3)
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testPositionComponent{X: 100, Y: 200})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}

	// 删除后的实体不能再添加组件
	em.DestroyEntityNow(id)
	em.AddComponent(id, &testLabelComponent{})
	if em.HasComponent(id, reflect.TypeOf(&testLabelComponent{})) {
		t.Error("AddComponent on a removed entity should be ignored")
	}
}

func TestGetEntitiesWith_SortedAndFiltered(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0)
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		em.AddComponent(id, &testPositionComponent{})
		if i%2 == 0 {
			em.AddComponent(id, &testLabelComponent{})
			ids = append(ids, id)
		}
	}

	got := em.GetEntitiesWith(
		reflect.TypeOf(&testPositionComponent{}),
		reflect.TypeOf(&testLabelComponent{}),
	)
	if len(got) != len(ids) {
		t.Fatalf("expected %d entities, got %d", len(ids), len(got))
	}
	for i := range got {
		if got[i] != ids[i] {
			t.Errorf("result[%d] = %d, want %d (results must be sorted)", i, got[i], ids[i])
		}
	}
}

// TestGenericAPI_Correctness 验证泛型 API 的正确性
func TestGenericAPI_Correctness(t *testing.T) {
	em := NewEntityManager()
	entity := em.CreateEntity()

	t.Run("AddComponent", func(t *testing.T) {
		AddComponent(em, entity, &testPositionComponent{X: 1, Y: 2, Z: 3})
		if !HasComponent[*testPositionComponent](em, entity) {
			t.Fatal("AddComponent 失败：组件未添加")
		}
	})

	t.Run("GetComponent", func(t *testing.T) {
		comp, ok := GetComponent[*testPositionComponent](em, entity)
		if !ok {
			t.Fatal("GetComponent 失败：组件不存在")
		}
		if comp.Z != 3 {
			t.Fatalf("GetComponent 失败：Z=%v", comp.Z)
		}
		if _, ok := GetComponent[*testLabelComponent](em, entity); ok {
			t.Fatal("GetComponent 应返回 false（组件不存在）")
		}
	})

	t.Run("GetEntitiesWith", func(t *testing.T) {
		AddComponent(em, entity, &testLabelComponent{Text: "Io"})
		if got := GetEntitiesWith2[*testPositionComponent, *testLabelComponent](em); len(got) != 1 {
			t.Fatalf("GetEntitiesWith2: 期望 1 个实体，实际 %d 个", len(got))
		}
		if got := GetEntitiesWith1[*testLabelComponent](em); len(got) != 1 || got[0] != entity {
			t.Fatalf("GetEntitiesWith1 返回 %v", got)
		}
	})

	t.Run("RemoveComponent", func(t *testing.T) {
		RemoveComponent[*testLabelComponent](em, entity)
		if HasComponent[*testLabelComponent](em, entity) {
			t.Fatal("RemoveComponent 失败")
		}
	})
}
