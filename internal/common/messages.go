package common

// Client-facing messages. The web client shows these verbatim.
const (
	MsgInternal = "服务器内部错误"
	MsgNotFound = "未找到资源"

	MsgCredentialsRequired = "用户名和密码不能为空"
	MsgInvalidFormat       = "参数格式不正确"
	MsgUsernameLength      = "用户名长度需在 3-32 之间"
	MsgPasswordLength      = "密码长度需在 6-64 之间"
	MsgRegistrationClosed  = "注册暂未开放"
	MsgUsernameTaken       = "用户名已存在"
	MsgBadCredentials      = "用户名或密码错误"
	MsgLoginBanned         = "账号已被封禁，请联系管理员"

	MsgTokenMissing     = "未授权访问"
	MsgTokenInvalid     = "登录已失效，请重新登录"
	MsgUserMissing      = "用户不存在"
	MsgAdminRequired    = "需要管理员权限"
	MsgAccountBanned    = "账号已被封禁"
	MsgExtensionNeeded  = "请先安装并启用防作弊插件，然后刷新页面重试"
	MsgExtensionAttempt = "检测到防作弊插件未激活，无法提交答案"

	MsgInvalidRange       = "难度范围不合法"
	MsgProblemUnavailable = "无法获取题目，请稍后重试"
	MsgInvalidParams      = "参数不正确"
	MsgProblemExpired     = "题目已过期，请重新获取"

	MsgAdminCredentials = "请输入用户名和密码"
	MsgUsernameTooShort = "用户名过短"
	MsgUsernameRequired = "请输入用户名"
)
