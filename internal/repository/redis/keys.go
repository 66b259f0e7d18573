package redis

import "fmt"

const ns = "theatre:v1"

func KeyReservationRate(userID int64) string {
	return fmt.Sprintf("%s:rl:reservations:user:%d", ns, userID)
}

func KeyIdemReservation(userID int64, idemKey string) string {
	return fmt.Sprintf("%s:idem:reservations:%d:%s", ns, userID, idemKey)
}

func ChannelPerformancesChanged() string {
	return ns + ":performances:changed"
}
