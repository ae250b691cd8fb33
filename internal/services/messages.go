package services

// Client-facing messages. The mobile client displays these verbatim.
const (
	MsgEmptyCredentials = "用户名和密码不能为空"
	MsgUserExists       = "用户已存在"
	MsgRegistered       = "注册成功"
	MsgLoggedIn         = "登录成功"
	MsgBadCredentials   = "用户名或密码错误"
	MsgBadOldPassword   = "原密码错误"
	MsgPasswordChanged  = "密码修改成功"
	MsgUserNotFound     = "用户不存在"
	MsgAvatarChanged    = "头像修改成功"
	MsgNotLoggedIn      = "未登录"
	MsgSynced           = "同步成功"
	MsgUserDeleted      = "用户已注销，相关任务已删除"
	MsgRelayFailed      = "智能解析失败"
	MsgInternal         = "服务器内部错误"
	MsgBadRequest       = "请求体格式错误"
	MsgTokenMismatch    = "登录凭证与用户不匹配"
)
