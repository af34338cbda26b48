package domain

// Инвентарь и холды живут в БД как поночные строки с ключом
// (property_id, night): на пару существует не больше одной записи.
// Репозитории оперируют списками ночей, отдельной доменной модели
// строки не нужно; истекший холд инертен и отфильтровывается по
// expires_at на чтении, фоновой подчистки нет.

// HoldStatus статус публичного холда
type HoldStatus string

const (
	HoldStatusRequested HoldStatus = "requested"
	HoldStatusApproved  HoldStatus = "approved"
)
