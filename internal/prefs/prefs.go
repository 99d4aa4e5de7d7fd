// Package prefs implements the legacy flat preference store: two JSON
// key-value files mirroring the namespaces the mobile app kept in shared
// preferences. It survives as the migration source for the structured store
// and still carries the currency setting and login session afterwards.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Veraticus/fintrack/internal/model"
)

// File names for the two preference namespaces.
const (
	appFileName  = "finance_tracker_prefs.json"
	userFileName = "user_preferences.json"
)

// DefaultCurrency is used when no currency preference is stored.
const DefaultCurrency = "Rs."

// Keys within the app namespace.
const (
	keyCurrency     = "currency"
	keyLanguage     = "app_language"
	keyTransactions = "transactions"
	keyCategories   = "categories"
	budgetKeyPrefix = "budget_"
)

// Keys within the user namespace.
const (
	keyUsers       = "users"
	keyIsLoggedIn  = "is_logged_in"
	keyCurrentUser = "current_user"
)

// Store is a flat key-value preference store over two JSON files in dir.
// Values are stored as raw JSON blobs, matching the legacy format.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore creates a preference store rooted at dir. Files are created
// lazily on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// namespace is one preference file loaded into memory.
type namespace map[string]json.RawMessage

func (s *Store) load(fileName string) (namespace, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, fileName))
	if os.IsNotExist(err) {
		return namespace{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	ns := namespace{}
	if err := json.Unmarshal(data, &ns); err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w", err)
	}
	return ns, nil
}

func (s *Store) save(fileName string, ns namespace) error {
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := json.MarshalIndent(ns, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	// Write-then-rename so a crash never leaves a truncated file.
	path := filepath.Join(s.dir, fileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace preferences: %w", err)
	}
	return nil
}

func (s *Store) get(fileName, key string, out any) (bool, error) {
	ns, err := s.load(fileName)
	if err != nil {
		return false, err
	}
	raw, ok := ns[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode preference %q: %w", key, err)
	}
	return true, nil
}

func (s *Store) set(fileName, key string, value any) error {
	ns, err := s.load(fileName)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode preference %q: %w", key, err)
	}
	ns[key] = raw
	return s.save(fileName, ns)
}

// Currency returns the stored currency symbol, defaulting to "Rs.".
func (s *Store) Currency() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var currency string
	ok, err := s.get(appFileName, keyCurrency, &currency)
	if err != nil {
		return "", err
	}
	if !ok || currency == "" {
		return DefaultCurrency, nil
	}
	return currency, nil
}

// SetCurrency stores the currency symbol.
func (s *Store) SetCurrency(currency string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(appFileName, keyCurrency, currency)
}

// Language returns the stored UI language, defaulting to English.
func (s *Store) Language() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var language string
	ok, err := s.get(appFileName, keyLanguage, &language)
	if err != nil {
		return "", err
	}
	if !ok || language == "" {
		return "English", nil
	}
	return language, nil
}

// SetLanguage stores the UI language.
func (s *Store) SetLanguage(language string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(appFileName, keyLanguage, language)
}

// Transactions returns the legacy transaction blob, empty when absent.
func (s *Store) Transactions() ([]model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var transactions []model.Transaction
	if _, err := s.get(appFileName, keyTransactions, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// SaveTransactions stores the full transaction list as one blob.
func (s *Store) SaveTransactions(transactions []model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(appFileName, keyTransactions, transactions)
}

// Categories returns the legacy category blob, empty when absent. Unlike the
// mobile app this does not fall back to the default set: migration must see
// an empty store as empty.
func (s *Store) Categories() ([]model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var categories []model.Category
	if _, err := s.get(appFileName, keyCategories, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// SaveCategories stores the full category list as one blob.
func (s *Store) SaveCategories(categories []model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(appFileName, keyCategories, categories)
}

// SetBudget stores a budget under its composite key budget_<month>_<year>.
func (s *Store) SetBudget(budget model.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := fmt.Sprintf("%s%d_%d", budgetKeyPrefix, budget.Month, budget.Year)
	return s.set(appFileName, key, budget)
}

// Budgets returns every stored budget keyed budget_<month>_<year>.
func (s *Store) Budgets() (map[string]model.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns, err := s.load(appFileName)
	if err != nil {
		return nil, err
	}

	budgets := make(map[string]model.Budget)
	for key, raw := range ns {
		if !strings.HasPrefix(key, budgetKeyPrefix) {
			continue
		}
		var budget model.Budget
		if err := json.Unmarshal(raw, &budget); err != nil {
			return nil, fmt.Errorf("failed to decode budget %q: %w", key, err)
		}
		budgets[key] = budget
	}
	return budgets, nil
}

// Users returns the stored user list, empty when absent.
func (s *Store) Users() ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []model.User
	if _, err := s.get(userFileName, keyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SaveUsers stores the full user list as one blob.
func (s *Store) SaveUsers(users []model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(userFileName, keyUsers, users)
}

// LoginState returns the ambient session state.
func (s *Store) LoginState() (model.LoginState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var state model.LoginState
	if _, err := s.get(userFileName, keyIsLoggedIn, &state.IsLoggedIn); err != nil {
		return model.LoginState{}, err
	}
	if _, err := s.get(userFileName, keyCurrentUser, &state.CurrentUsername); err != nil {
		return model.LoginState{}, err
	}
	return state, nil
}

// SaveLoginState records the session flag and current username together.
func (s *Store) SaveLoginState(isLoggedIn bool, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns, err := s.load(userFileName)
	if err != nil {
		return err
	}
	loggedIn, err := json.Marshal(isLoggedIn)
	if err != nil {
		return fmt.Errorf("failed to encode login state: %w", err)
	}
	current, err := json.Marshal(username)
	if err != nil {
		return fmt.Errorf("failed to encode current user: %w", err)
	}
	ns[keyIsLoggedIn] = loggedIn
	ns[keyCurrentUser] = current
	return s.save(userFileName, ns)
}

// ClearApp removes the entire app preference namespace.
func (s *Store) ClearApp() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearFile(appFileName)
}

// ClearUser removes the entire user preference namespace, including the
// login session.
func (s *Store) ClearUser() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearFile(userFileName)
}

func (s *Store) clearFile(fileName string) error {
	err := os.Remove(filepath.Join(s.dir, fileName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear preferences: %w", err)
	}
	return nil
}

// Empty reports whether both namespaces hold no entity data. Settings keys
// (currency, language, session) do not count as entity data.
func (s *Store) Empty() (bool, error) {
	transactions, err := s.Transactions()
	if err != nil {
		return false, err
	}
	categories, err := s.Categories()
	if err != nil {
		return false, err
	}
	budgets, err := s.Budgets()
	if err != nil {
		return false, err
	}
	users, err := s.Users()
	if err != nil {
		return false, err
	}
	return len(transactions) == 0 && len(categories) == 0 && len(budgets) == 0 && len(users) == 0, nil
}
