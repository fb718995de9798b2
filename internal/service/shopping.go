package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saadjs/gymbro/internal/localstore"
	"github.com/saadjs/gymbro/internal/model"
)

// SaveShoppingList stores generated items as a new list, which becomes the
// active one.
func SaveShoppingList(ctx context.Context, store *localstore.Store, weekStart string, items []model.ShoppingListItem, now time.Time) (model.ShoppingList, error) {
	list := model.ShoppingList{
		ID:        uuid.NewString(),
		Name:      "Shopping list for week of " + weekStart,
		WeekStart: weekStart,
		Items:     make([]model.ShoppingListItem, 0, len(items)),
		CreatedAt: now.UTC().Format(time.RFC3339),
	}
	for _, it := range items {
		it.ID = uuid.NewString()
		list.Items = append(list.Items, it)
	}
	lists := append(ShoppingLists(ctx, store), list)
	if err := store.SetE(ctx, localstore.KeyShoppingLists, lists); err != nil {
		return model.ShoppingList{}, err
	}
	return list, nil
}

func ShoppingLists(ctx context.Context, store *localstore.Store) []model.ShoppingList {
	return localstore.GetSlice[model.ShoppingList](ctx, store, localstore.KeyShoppingLists)
}

// ActiveShoppingList is the most recently generated list.
func ActiveShoppingList(ctx context.Context, store *localstore.Store) (model.ShoppingList, bool) {
	lists := ShoppingLists(ctx, store)
	if len(lists) == 0 {
		return model.ShoppingList{}, false
	}
	return lists[len(lists)-1], true
}

// ToggleShoppingItem flips an item on the active list. position is 1-based
// in list order.
func ToggleShoppingItem(ctx context.Context, store *localstore.Store, position int) (model.ShoppingListItem, error) {
	var toggled model.ShoppingListItem
	err := updateActiveList(ctx, store, func(list *model.ShoppingList) error {
		if position < 1 || position > len(list.Items) {
			return fmt.Errorf("shopping list has no item %d", position)
		}
		item := &list.Items[position-1]
		item.IsChecked = !item.IsChecked
		toggled = *item
		return nil
	})
	return toggled, err
}

// ClearCompleted drops checked items from the active list and reports how
// many were removed.
func ClearCompleted(ctx context.Context, store *localstore.Store) (int, error) {
	removed := 0
	err := updateActiveList(ctx, store, func(list *model.ShoppingList) error {
		kept := list.Items[:0]
		for _, it := range list.Items {
			if it.IsChecked {
				removed++
				continue
			}
			kept = append(kept, it)
		}
		list.Items = kept
		return nil
	})
	return removed, err
}

// ShoppingProgress counts checked items out of the total.
func ShoppingProgress(list model.ShoppingList) (checked, total int) {
	for _, it := range list.Items {
		if it.IsChecked {
			checked++
		}
	}
	return checked, len(list.Items)
}

// GroupByCategory keeps first-seen category order.
func GroupByCategory(items []model.ShoppingListItem) ([]string, map[string][]model.ShoppingListItem) {
	order := make([]string, 0)
	groups := make(map[string][]model.ShoppingListItem)
	for _, it := range items {
		if _, ok := groups[it.Category]; !ok {
			order = append(order, it.Category)
		}
		groups[it.Category] = append(groups[it.Category], it)
	}
	return order, groups
}

func updateActiveList(ctx context.Context, store *localstore.Store, fn func(*model.ShoppingList) error) error {
	lists := ShoppingLists(ctx, store)
	if len(lists) == 0 {
		return fmt.Errorf("no shopping list yet; generate one from a meal plan")
	}
	if err := fn(&lists[len(lists)-1]); err != nil {
		return err
	}
	return store.SetE(ctx, localstore.KeyShoppingLists, lists)
}
