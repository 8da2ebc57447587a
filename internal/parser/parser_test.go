package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njorogek/pesaflow/internal/model"
)

func TestParseReceived(t *testing.T) {
	raw := "QAB1X2Y3 Confirmed. You have received Ksh500.00 from JOHN DOE 0712345678 on 11/9/25 at 2:30 PM. New M-PESA balance is Ksh1,500.00."

	tx := Parse(raw)
	require.NotNil(t, tx)

	assert.Equal(t, "QAB1X2Y3", tx.TxID)
	assert.Equal(t, model.CategoryReceived, tx.Category)
	assert.Equal(t, model.DirectionIn, tx.Direction)
	assert.Equal(t, "received from", tx.Action)
	assert.InDelta(t, 500.0, tx.Amount, 0.001)
	assert.Equal(t, "JOHN DOE", tx.From)
	assert.Equal(t, "0712345678", tx.Phone)
	assert.Equal(t, model.NameMpesa, tx.To)
	assert.Equal(t, "11/9/25", tx.Date)
	assert.Equal(t, "2:30 PM", tx.Time)
	assert.Equal(t, raw, tx.RawText)

	balance, ok := tx.Balance(model.AccountMpesa)
	require.True(t, ok)
	assert.InDelta(t, 1500.0, balance, 0.001)

	_, ok = tx.Balance(model.AccountPochi)
	assert.False(t, ok, "unmentioned balance must stay absent")
}

func TestParseReceivedIntoPochi(t *testing.T) {
	raw := "QCD9Z8Y7 Confirmed. You have received Ksh750.00 from MARY WANJIKU 0722000111 on 3/10/25 at 10:15 AM. New Business balance is Ksh2,250.00."

	tx := Parse(raw)
	require.NotNil(t, tx)

	assert.Equal(t, model.CategoryReceived, tx.Category)
	assert.Equal(t, "MARY WANJIKU", tx.From)
	assert.Equal(t, model.NamePochi, tx.To, "a business balance statement routes the money to Pochi")

	balance, ok := tx.Balance(model.AccountPochi)
	require.True(t, ok)
	assert.InDelta(t, 2250.0, balance, 0.001)
}

func TestParseSent(t *testing.T) {
	raw := "QAB2Y4Z5 Confirmed. Ksh200.00 sent to SAFARICOM DATA BUNDLES for account 0798765432 on 11/9/25 at 9:00 AM. Transaction cost, Ksh0.00. New M-PESA balance is Ksh1,300.00."

	tx := Parse(raw)
	require.NotNil(t, tx)

	assert.Equal(t, "QAB2Y4Z5", tx.TxID)
	assert.Equal(t, model.CategorySent, tx.Category)
	assert.Equal(t, model.DirectionOut, tx.Direction)
	assert.Equal(t, "sent to", tx.Action)
	assert.InDelta(t, 200.0, tx.Amount, 0.001)
	assert.Equal(t, "SAFARICOM DATA BUNDLES", tx.To)
	assert.Equal(t, "0798765432", tx.AccountRef)
	assert.Equal(t, model.NameMpesa, tx.From)
	assert.InDelta(t, 0.0, tx.Cost, 0.001)

	balance, ok := tx.Balance(model.AccountMpesa)
	require.True(t, ok)
	assert.InDelta(t, 1300.0, balance, 0.001)
}

func TestParseSentAccountRefSupersedesShortName(t *testing.T) {
	raw := "QEF5G6H7 Confirmed. Ksh1,200.00 paid to NAIROBI WATER for account NAIROBI WATER KILELESHWA BRANCH on 5/10/25 at 4:45 PM. New M-PESA balance is Ksh800.00."

	tx := Parse(raw)
	require.NotNil(t, tx)

	assert.Equal(t, model.CategorySent, tx.Category)
	assert.Equal(t, "paid to", tx.Action)
	assert.Equal(t, "NAIROBI WATER KILELESHWA BRANCH", tx.AccountRef)
	assert.Equal(t, "NAIROBI WATER KILELESHWA BRANCH", tx.To,
		"the fuller paybill reference replaces the truncated recipient name")
}

func TestParseSentWithPhone(t *testing.T) {
	raw := "QGH8J9K1 Confirmed. Ksh350.00 sent to PETER KAMAU 0733444555 on 6/10/25 at 1:20 PM. Transaction cost, Ksh7.00. New M-PESA balance is Ksh450.00."

	tx := Parse(raw)
	require.NotNil(t, tx)

	assert.Equal(t, "PETER KAMAU", tx.To)
	assert.Equal(t, "0733444555", tx.Phone)
	assert.InDelta(t, 7.0, tx.Cost, 0.001)
}

func TestParseInternalMove(t *testing.T) {
	raw := "Ksh100.00 has been moved from your M-PESA account to your Business account. New M-PESA balance is Ksh900.00. New Business balance is Ksh100.00."

	tx := Parse(raw)
	require.NotNil(t, tx)

	assert.Equal(t, model.UnknownTxID, tx.TxID)
	assert.Equal(t, model.CategoryInternal, tx.Category)
	assert.Equal(t, model.DirectionInternal, tx.Direction)
	assert.Equal(t, model.NameMpesa, tx.From)
	assert.Equal(t, model.NamePochi, tx.To)
	assert.InDelta(t, 100.0, tx.Amount, 0.001)

	mpesa, ok := tx.Balance(model.AccountMpesa)
	require.True(t, ok)
	assert.InDelta(t, 900.0, mpesa, 0.001)

	pochi, ok := tx.Balance(model.AccountPochi)
	require.True(t, ok)
	assert.InDelta(t, 100.0, pochi, 0.001)
}

func TestParseSavingsTransfer(t *testing.T) {
	t.Run("to savings", func(t *testing.T) {
		raw := "TFJ3K5X9 Confirmed. Ksh2,000.00 transferred to your M-Shwari account on 12/9/25 at 8:00 AM. New M-PESA balance is Ksh500.00. New M-Shwari saving account balance is Ksh4,500.00. Transaction cost Ksh0.00."

		tx := Parse(raw)
		require.NotNil(t, tx)

		assert.Equal(t, model.CategorySavings, tx.Category)
		assert.Equal(t, model.DirectionInternal, tx.Direction)
		assert.Equal(t, "transferred to", tx.Action)
		assert.Equal(t, model.NameMpesa, tx.From)
		assert.Equal(t, model.NameMshwari, tx.To)
		assert.InDelta(t, 2000.0, tx.Amount, 0.001)
		assert.InDelta(t, 0.0, tx.Cost, 0.001)

		mpesa, ok := tx.Balance(model.AccountMpesa)
		require.True(t, ok)
		assert.InDelta(t, 500.0, mpesa, 0.001)

		mshwari, ok := tx.Balance(model.AccountMshwari)
		require.True(t, ok)
		assert.InDelta(t, 4500.0, mshwari, 0.001)
	})

	t.Run("from savings", func(t *testing.T) {
		raw := "TGK4L6Y1 Confirmed. Ksh1,000.00 transferred from M-Shwari account on 13/9/25 at 7:30 AM. New M-PESA balance is Ksh1,500.00. New M-Shwari saving account balance is Ksh3,500.00. Transaction cost Ksh33.00."

		tx := Parse(raw)
		require.NotNil(t, tx)

		assert.Equal(t, model.CategorySavings, tx.Category)
		assert.Equal(t, "transferred from", tx.Action)
		assert.Equal(t, model.NameMshwari, tx.From)
		assert.Equal(t, model.NameMpesa, tx.To)
		assert.InDelta(t, 33.0, tx.Cost, 0.001)
	})
}

func TestParseFailureMessagesYieldNoRecord(t *testing.T) {
	messages := []string{
		"You have entered the wrong PIN. Unable to process your request.",
		"You do not have sufficient funds to complete this transaction.",
		"Failed. Ksh500.00 could not be sent to JOHN DOE. New M-PESA balance is Ksh1,500.00.",
	}

	for _, msg := range messages {
		assert.Nil(t, Parse(msg), "expected no record for %q", msg)
	}
}

func TestParseUnrecognizedMessage(t *testing.T) {
	tx := Parse("Your airtime balance is low.")
	require.NotNil(t, tx, "unrecognized-but-real messages still yield a record")

	assert.Equal(t, model.CategoryOther, tx.Category)
	assert.Equal(t, model.DirectionUnknown, tx.Direction)
	assert.Equal(t, model.UnknownTxID, tx.TxID)
	assert.InDelta(t, 0.0, tx.Amount, 0.001)
	assert.Empty(t, tx.From)
	assert.Empty(t, tx.To)
	assert.Empty(t, tx.Balances)
}

func TestParseUnrecognizedMessagesHashDistinctly(t *testing.T) {
	a := Parse("Your airtime balance is low.")
	b := Parse("Welcome to M-PESA.")
	require.NotNil(t, a)
	require.NotNil(t, b)

	// Both records carry default extracted fields; the hash must still
	// separate them so an import stores every distinct message.
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestParseDirectionAlwaysMatchesCategory(t *testing.T) {
	messages := []string{
		"QAB1X2Y3 Confirmed. You have received Ksh500.00 from JOHN DOE 0712345678 on 11/9/25 at 2:30 PM. New M-PESA balance is Ksh1,500.00.",
		"QAB2Y4Z5 Confirmed. Ksh200.00 sent to SAFARICOM DATA BUNDLES for account 0798765432 on 11/9/25 at 9:00 AM. Transaction cost, Ksh0.00. New M-PESA balance is Ksh1,300.00.",
		"Ksh100.00 has been moved from your M-PESA account to your Business account. New M-PESA balance is Ksh900.00.",
		"TFJ3K5X9 Confirmed. Ksh2,000.00 transferred to your M-Shwari account. New M-PESA balance is Ksh500.00.",
		"Your airtime balance is low.",
		"Welcome to M-PESA.",
		"",
	}

	for _, msg := range messages {
		tx := Parse(msg)
		require.NotNil(t, tx)
		assert.Equal(t, model.DirectionFor(tx.Category), tx.Direction, "direction diverged for %q", msg)
	}
}

func TestParseTruncatedInput(t *testing.T) {
	// Truncation degrades to defaults, never to an error or nil.
	tx := Parse("QAB1X2Y3 Confirmed. You have received Ksh")
	require.NotNil(t, tx)
	assert.Equal(t, model.CategoryReceived, tx.Category)
	assert.InDelta(t, 0.0, tx.Amount, 0.001)
}

func TestParseBatch(t *testing.T) {
	messages := []string{
		"QAB1X2Y3 Confirmed. You have received Ksh500.00 from JOHN DOE on 11/9/25 at 2:30 PM. New M-PESA balance is Ksh1,500.00.",
		"You have entered the wrong PIN. Unable to process your request.",
		"Your airtime balance is low.",
	}

	calls := 0
	records, err := ParseBatch(context.Background(), messages, func() { calls++ })
	require.NoError(t, err)
	require.Len(t, records, 2, "the failure message is dropped")
	assert.Equal(t, model.CategoryReceived, records[0].Category)
	assert.Equal(t, model.CategoryOther, records[1].Category)
	assert.Equal(t, len(messages), calls, "progress fires for dropped messages too")
}

func TestParseBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ParseBatch(ctx, []string{"Your airtime balance is low."}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
