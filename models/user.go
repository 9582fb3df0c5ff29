package models

// User is the per-user record created on first app load. The
// dailyDate/dailyCount pair is the atomic counter backing the daily
// send quota: dailyCount only counts sends on dailyDate.
type User struct {
	FID                 string `dynamodbav:"fid" json:"fid"`
	Username            string `dynamodbav:"username" json:"username"`
	ComplimentsSent     int    `dynamodbav:"complimentsSent" json:"complimentsSent"`
	ComplimentsReceived int    `dynamodbav:"complimentsReceived" json:"complimentsReceived"`
	CreatedAt           string `dynamodbav:"createdAt" json:"createdAt"`
	DailyDate           string `dynamodbav:"dailyDate,omitempty" json:"-"`
	DailyCount          int    `dynamodbav:"dailyCount,omitempty" json:"-"`
}
