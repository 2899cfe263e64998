package handlers

import (
	"io"

	"marketing-template/storage"
)

type mockStorage struct {
	SaveFn    func(slot storage.Slot, src io.Reader) (string, error)
	ReadFn    func(slot storage.Slot) ([]byte, bool, error)
	Files     map[storage.Slot][]byte
	SaveCalls []storage.Slot
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		Files:     map[storage.Slot][]byte{},
		SaveCalls: []storage.Slot{},
	}
}

func (m *mockStorage) Save(slot storage.Slot, src io.Reader) (string, error) {
	m.SaveCalls = append(m.SaveCalls, slot)
	if m.SaveFn != nil {
		return m.SaveFn(slot, src)
	}
	content, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}
	m.Files[slot] = content
	return slot.Filename()
}

func (m *mockStorage) Read(slot storage.Slot) ([]byte, bool, error) {
	if m.ReadFn != nil {
		return m.ReadFn(slot)
	}
	content, ok := m.Files[slot]
	return content, ok, nil
}
